package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/sparkquiz/internal/config"
	"github.com/abhisek/sparkquiz/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "sparkquiz",
	Short: "Terminal quiz runner",
	Long:  "SparkQuiz runs a quiz from a folder or URL of YAML question files, ordering follow-ups after the questions they build on.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// bindFlags registers the flags that override environment configuration.
func bindFlags(flags *pflag.FlagSet) {
	flags.String("env-file", ".env", "Dotenv file to load before reading SPARKQUIZ_* variables")
	flags.String("questions-dir", "", "Directory holding question files (overrides SPARKQUIZ_QUESTIONS_DIR)")
	flags.String("questions-url", "", "Base URL serving question files (overrides SPARKQUIZ_QUESTIONS_URL)")
	flags.String("manifest", "", "Manifest listing question files, relative to the source")
	flags.Duration("timeout", 0, "Upper bound on loading all questions")
	flags.Int("concurrency", 0, "Maximum number of concurrent fetches")
	flags.String("scoring", "", "Total score mode: sum or max")
	flags.Uint64("seed", 0, "Seed for question and answer order (0 = random)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("badge-file", "", "Where the results screen saves an earned badge")
}

// loadConfig reads the dotenv file, parses the environment and applies any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	if envFile, _ := flags.GetString("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	return config.Load(func(cfg *config.Config) {
		if flags.Changed("questions-dir") {
			cfg.QuestionsDir, _ = flags.GetString("questions-dir")
		}
		if flags.Changed("questions-url") {
			cfg.QuestionsURL, _ = flags.GetString("questions-url")
		}
		if flags.Changed("manifest") {
			cfg.Manifest, _ = flags.GetString("manifest")
		}
		if flags.Changed("timeout") {
			cfg.LoadTimeout, _ = flags.GetDuration("timeout")
		}
		if flags.Changed("concurrency") {
			cfg.FetchConcurrency, _ = flags.GetInt("concurrency")
		}
		if flags.Changed("scoring") {
			mode, _ := flags.GetString("scoring")
			cfg.Scoring = session.ScoringMode(mode)
		}
		if flags.Changed("seed") {
			cfg.Seed, _ = flags.GetUint64("seed")
		}
		if flags.Changed("log-level") {
			cfg.LogLevel, _ = flags.GetString("log-level")
		}
		if flags.Changed("log-file") {
			cfg.LogFile, _ = flags.GetString("log-file")
		}
		if flags.Changed("badge-file") {
			cfg.BadgeFile, _ = flags.GetString("badge-file")
		}
	})
}
