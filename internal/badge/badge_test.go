package badge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparkquiz/internal/session"
)

func earned() *session.Summary {
	return &session.Summary{
		StartedAt:            time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Duration:             4*time.Minute + 12*time.Second + 300*time.Millisecond,
		Score:                12,
		TotalPossible:        15,
		Percentage:           80,
		Answered:             9,
		TotalQuestions:       10,
		CompletionPercentage: 90,
		BadgeRequirement:     8,
		QualifiesForBadge:    true,
	}
}

func TestRender(t *testing.T) {
	out := ansi.Strip(Render(earned()))

	for _, want := range []string{
		"SparkQuiz Badge",
		"Answered 9 of 10 questions (90%)",
		"Score 12 / 15 points (80%)",
		"Earned 14 Mar 2026 in 4m12s",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badges", "quiz.txt")

	abs, err := Save(path, earned())
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Score 12 / 15 points (80%)")
	assert.False(t, strings.Contains(string(data), "\x1b["), "file holds plain text")
}

func TestSave_NotEarned(t *testing.T) {
	sum := earned()
	sum.QualifiesForBadge = false
	path := filepath.Join(t.TempDir(), "quiz.txt")

	_, err := Save(path, sum)
	assert.ErrorIs(t, err, ErrNotEarned)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
