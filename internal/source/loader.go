package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/sparkquiz/internal/question"
)

var (
	// ErrNoQuestions is returned when no reference yields a valid question.
	ErrNoQuestions = errors.New("no valid quiz questions found")

	// ErrLoadTimeout marks references cut off by the load timeout, and is
	// returned by the load itself when nothing finished in time.
	ErrLoadTimeout = errors.New("question load timed out")
)

// Default loader settings.
const (
	DefaultConcurrency = 8
	DefaultTimeout     = 10 * time.Second
)

// Failure records why a reference produced no question.
type Failure struct {
	Ref string
	Err error
}

// Report describes the outcome of a load.
type Report struct {
	// Records holds the valid questions in reference order.
	Records []question.Record
	// Skipped lists references that were well-formed but not quiz questions.
	Skipped []string
	// Failed lists references that could not be fetched, parsed or validated.
	Failed []Failure
}

// Total returns the number of references considered.
func (r *Report) Total() int {
	return len(r.Records) + len(r.Skipped) + len(r.Failed)
}

// Loader fetches and parses question documents concurrently.
type Loader struct {
	fetcher     Fetcher
	concurrency int
	timeout     time.Duration
	logger      zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithConcurrency bounds the number of in-flight fetches.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithTimeout bounds the whole load.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger for per-reference warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a loader over f.
func NewLoader(f Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher:     f,
		concurrency: DefaultConcurrency,
		timeout:     DefaultTimeout,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the valid questions among refs, in reference order.
func (l *Loader) Load(ctx context.Context, refs []string) ([]question.Record, error) {
	report, err := l.LoadReport(ctx, refs)
	if err != nil {
		return nil, err
	}
	return report.Records, nil
}

type outcome struct {
	record  question.Record
	ok      bool
	skipped bool
	err     error
}

// LoadReport loads refs and describes every reference's outcome. Individual
// failures are logged and dropped, including references still pending when
// the timeout expires. The load fails only when nothing valid remains or the
// caller's context is cancelled.
func (l *Loader) LoadReport(ctx context.Context, refs []string) (*Report, error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	outcomes := make([]outcome, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			outcomes[i] = l.loadOne(gctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	if err := parent.Err(); err != nil {
		return nil, err
	}
	timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)

	report := &Report{}
	for i, o := range outcomes {
		switch {
		case o.ok:
			report.Records = append(report.Records, o.record)
		case o.skipped:
			report.Skipped = append(report.Skipped, refs[i])
		default:
			report.Failed = append(report.Failed, Failure{Ref: refs[i], Err: o.err})
		}
	}

	event := l.logger.Info()
	if timedOut {
		event = l.logger.Warn().Dur("timeout", l.timeout)
	}
	event.
		Int("loaded", len(report.Records)).
		Int("skipped", len(report.Skipped)).
		Int("failed", len(report.Failed)).
		Msg("questions loaded")

	if len(report.Records) == 0 {
		if timedOut {
			return report, fmt.Errorf("%w after %s", ErrLoadTimeout, l.timeout)
		}
		return report, ErrNoQuestions
	}
	return report, nil
}

func (l *Loader) loadOne(ctx context.Context, ref string) outcome {
	data, err := l.fetcher.Fetch(ctx, ref)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s: %w", ErrLoadTimeout, l.timeout, err)
	}
	if err != nil {
		l.logger.Warn().Err(err).Str("ref", ref).Msg("failed to fetch question")
		return outcome{err: err}
	}

	rec, err := question.Parse(data)
	if errors.Is(err, question.ErrNotQuiz) {
		l.logger.Debug().Str("ref", ref).Msg("skipping non-quiz document")
		return outcome{skipped: true}
	}
	if err != nil {
		l.logger.Warn().Err(err).Str("ref", ref).Msg("invalid question")
		return outcome{err: err}
	}
	rec.Source = ref
	return outcome{record: rec, ok: true}
}
