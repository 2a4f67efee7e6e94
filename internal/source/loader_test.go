package source

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparkquiz/internal/question"
)

func quizDoc(id string) string {
	return fmt.Sprintf(`type: quiz
id: %s
question: What is %s?
answers:
  - text: right
    correct: true
  - text: wrong
`, id, id)
}

func sources(recs []question.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Source
	}
	return out
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"a.yaml":         {Data: []byte(quizDoc("a"))},
		"b.yaml":         {Data: []byte(quizDoc("b"))},
		"nested/c.yml":   {Data: []byte(quizDoc("c"))},
		"notes.yaml":     {Data: []byte("type: note\ntext: hello\n")},
		"broken.yaml":    {Data: []byte("type: quiz\nanswers: [\n")},
		"nocorrect.yaml": {Data: []byte("type: quiz\nanswers:\n  - text: x\n")},
		"readme.md":      {Data: []byte("# questions")},
		".hidden/x.yaml": {Data: []byte(quizDoc("hidden"))},
		"manifest.yaml":  {Data: []byte("questions:\n  - b.yaml\n  - a.yaml\n")},
	}
}

func TestLoader_LoadKeepsReferenceOrder(t *testing.T) {
	l := NewLoader(&FSFetcher{FS: testFS()}, WithConcurrency(2))

	recs, err := l.Load(context.Background(), []string{"nested/c.yml", "a.yaml", "b.yaml"})
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "c", recs[0].ID)
	assert.Equal(t, "a", recs[1].ID)
	assert.Equal(t, "b", recs[2].ID)
	assert.Equal(t, "nested/c.yml", recs[0].Source)
}

func TestLoader_DropsInvalidAndNonQuiz(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	l := NewLoader(&FSFetcher{FS: testFS()}, WithLogger(logger))

	report, err := l.LoadReport(context.Background(),
		[]string{"a.yaml", "notes.yaml", "broken.yaml", "missing.yaml", "nocorrect.yaml"})
	require.NoError(t, err)

	require.Len(t, report.Records, 1)
	assert.Equal(t, []string{"notes.yaml"}, report.Skipped)
	require.Len(t, report.Failed, 3)
	assert.Equal(t, "broken.yaml", report.Failed[0].Ref)
	assert.ErrorIs(t, report.Failed[1].Err, ErrNotFound)
	assert.Equal(t, 5, report.Total())

	out := buf.String()
	assert.Contains(t, out, "skipping non-quiz document")
	assert.Contains(t, out, "invalid question")
	assert.Contains(t, out, "failed to fetch question")
}

func TestLoader_NoValidQuestions(t *testing.T) {
	l := NewLoader(&FSFetcher{FS: testFS()})

	_, err := l.Load(context.Background(), []string{"notes.yaml", "broken.yaml"})
	assert.ErrorIs(t, err, ErrNoQuestions)

	_, err = l.Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

type blockingFetcher struct{}

func (blockingFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// stallingFetcher serves fsys but blocks on the refs in stall until the
// context ends.
type stallingFetcher struct {
	fsys  fstest.MapFS
	stall map[string]bool
}

func (f stallingFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if f.stall[ref] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return (&FSFetcher{FS: f.fsys}).Fetch(ctx, ref)
}

func TestLoader_Timeout(t *testing.T) {
	l := NewLoader(blockingFetcher{}, WithTimeout(20*time.Millisecond))

	report, err := l.LoadReport(context.Background(), []string{"a.yaml"})
	assert.ErrorIs(t, err, ErrLoadTimeout)
	require.NotNil(t, report)
	require.Len(t, report.Failed, 1)
	assert.ErrorIs(t, report.Failed[0].Err, ErrLoadTimeout)
}

func TestLoader_TimeoutKeepsFinishedRecords(t *testing.T) {
	f := stallingFetcher{fsys: testFS(), stall: map[string]bool{"hung.yaml": true}}
	l := NewLoader(f, WithTimeout(50*time.Millisecond), WithConcurrency(4))

	report, err := l.LoadReport(context.Background(), []string{"a.yaml", "hung.yaml", "b.yaml", "nested/c.yml"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.yaml", "b.yaml", "nested/c.yml"}, sources(report.Records))
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "hung.yaml", report.Failed[0].Ref)
	assert.ErrorIs(t, report.Failed[0].Err, ErrLoadTimeout)
}

func TestLoader_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewLoader(blockingFetcher{})

	_, err := l.Load(ctx, []string{"a.yaml"})
	assert.ErrorIs(t, err, context.Canceled)
}
