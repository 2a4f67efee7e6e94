package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/sparkquiz/internal/app"
	"github.com/abhisek/sparkquiz/internal/config"
	"github.com/abhisek/sparkquiz/internal/logging"
	"github.com/abhisek/sparkquiz/internal/ordering"
	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/source"
)

// runApp loads configuration, wires the loader and session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info().
		Str("dir", cfg.QuestionsDir).
		Str("url", cfg.QuestionsURL).
		Uint64("seed", cfg.Seed).
		Msg("starting quiz")

	return app.Run(app.Options{
		Start:     startSession(cfg, logger),
		Logger:    logger,
		BadgeFile: cfg.BadgeFile,
	})
}

// setupCLI loads configuration and a stderr logger for the non-interactive commands.
func setupCLI(cmd *cobra.Command) (*config.Config, context.Context, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cfg, logging.IntoContext(ctx, logger), closeLog, nil
}

// newFetcher picks the HTTP source when a URL is configured, else the
// directory. The returned fs.FS is nil for HTTP, which disables discovery.
func newFetcher(cfg *config.Config) (source.Fetcher, fs.FS, error) {
	if cfg.QuestionsURL != "" {
		f, err := source.NewHTTPFetcher(cfg.QuestionsURL, &http.Client{Timeout: cfg.LoadTimeout})
		if err != nil {
			return nil, nil, err
		}
		return f, nil, nil
	}
	fsys := os.DirFS(cfg.QuestionsDir)
	return &source.FSFetcher{FS: fsys}, fsys, nil
}

// loadReport resolves references and loads every question document.
func loadReport(ctx context.Context, cfg *config.Config) (*source.Report, error) {
	logger := logging.FromContext(ctx)

	f, fsys, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	refs, err := source.ResolveRefs(ctx, f, cfg.Manifest, fsys)
	if err != nil {
		return nil, fmt.Errorf("resolve questions: %w", err)
	}
	logger.Debug().Int("refs", len(refs)).Msg("resolved question references")

	loader := source.NewLoader(f,
		source.WithConcurrency(cfg.FetchConcurrency),
		source.WithTimeout(cfg.LoadTimeout),
		source.WithLogger(logger),
	)
	return loader.LoadReport(ctx, refs)
}

// startSession returns the loader callback the TUI runs on its loading screen.
func startSession(cfg *config.Config, logger zerolog.Logger) func(context.Context) (*session.Session, error) {
	return func(ctx context.Context) (*session.Session, error) {
		report, err := loadReport(logging.IntoContext(ctx, logger), cfg)
		if err != nil {
			return nil, err
		}
		return newSession(cfg, report, logger)
	}
}

// newSession orders the loaded records and creates the session over them.
func newSession(cfg *config.Config, report *source.Report, logger zerolog.Logger) (*session.Session, error) {
	orderer := ordering.NewSeeded(cfg.Seed, logger)
	sess, err := session.New(orderer.Order(report.Records), session.Options{
		Scoring:   cfg.Scoring,
		Rand:      answerRand(cfg.Seed),
		Sequencer: orderer,
	})
	if err != nil {
		return nil, err
	}
	sess.Subscribe(session.TransitionLogger(logger))

	logger.Info().
		Str("session", sess.ID()).
		Int("questions", sess.Len()).
		Int("skipped", len(report.Skipped)).
		Int("failed", len(report.Failed)).
		Msg("session created")
	return sess, nil
}

// answerRand derives the answer shuffling source from seed, or returns nil
// so the session picks its own.
func answerRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, ^seed))
}
