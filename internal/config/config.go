package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/sparkquiz/internal/session"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SPARKQUIZ_"

// Config holds runtime configuration for the quiz.
type Config struct {
	// QuestionsDir is the directory question files and the manifest are read from.
	QuestionsDir string `env:"QUESTIONS_DIR" envDefault:"questions"`

	// QuestionsURL, when set, fetches questions over HTTP relative to this base URL.
	QuestionsURL string `env:"QUESTIONS_URL"`

	// Manifest lists question files, relative to the question source.
	// When missing, the directory is globbed for YAML files.
	Manifest string `env:"MANIFEST" envDefault:"manifest.yaml"`

	// LoadTimeout bounds the whole bulk fetch.
	LoadTimeout time.Duration `env:"LOAD_TIMEOUT" envDefault:"10s"`

	// FetchConcurrency limits parallel fetches.
	FetchConcurrency int `env:"FETCH_CONCURRENCY" envDefault:"8"`

	Scoring session.ScoringMode `env:"SCORING_MODE" envDefault:"sum"`

	// Seed makes ordering reproducible; 0 picks a random seed.
	Seed uint64 `env:"SEED" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// BadgeFile is where the results screen saves an earned badge.
	BadgeFile string `env:"BADGE_FILE" envDefault:"sparkquiz-badge.txt"`
}

// Override adjusts a parsed Config before validation, e.g. from CLI flags.
type Override func(*Config)

// Load parses environment variables into a Config, applies overrides in
// order and validates the result.
func Load(overrides ...Override) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.QuestionsDir == "" && c.QuestionsURL == "" {
		errs = append(errs, errors.New("one of QUESTIONS_DIR or QUESTIONS_URL is required"))
	}
	if c.LoadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LOAD_TIMEOUT must be positive, got %s", c.LoadTimeout))
	}
	if c.FetchConcurrency < 1 {
		errs = append(errs, fmt.Errorf("FETCH_CONCURRENCY must be at least 1, got %d", c.FetchConcurrency))
	}
	switch c.Scoring {
	case session.ScoringSum, session.ScoringMax:
	default:
		errs = append(errs, fmt.Errorf("SCORING_MODE must be %q or %q, got %q", session.ScoringSum, session.ScoringMax, c.Scoring))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
