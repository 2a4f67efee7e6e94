package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparkquiz/internal/logging"
	"github.com/abhisek/sparkquiz/internal/ordering"
	"github.com/abhisek/sparkquiz/internal/question"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the order questions would be asked in",
	Long: `Load the questions, order them once and print the sequence together with
any follow-up that lands before its parent.

With --trials N the ordering is repeated N times and only violation counts are
reported, which is useful for checking a question set for cycles or dangling
follow-up references.`,
	RunE: runOrder,
}

func init() {
	orderCmd.Flags().Int("trials", 1, "Number of orderings to run")
}

func runOrder(cmd *cobra.Command, args []string) error {
	trials, _ := cmd.Flags().GetInt("trials")
	if trials < 1 {
		return fmt.Errorf("--trials must be at least 1, got %d", trials)
	}

	cfg, ctx, closeLog, err := setupCLI(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	report, err := loadReport(ctx, cfg)
	if err != nil {
		return err
	}

	orderer := ordering.NewSeeded(cfg.Seed, logging.FromContext(ctx))
	out := cmd.OutOrStdout()

	if trials == 1 {
		seq := orderer.Order(report.Records)
		printSequence(out, seq)
		printViolations(out, ordering.Verify(seq))
		return nil
	}

	stats := runTrials(orderer, report.Records, trials)
	fmt.Fprintf(out, "%d questions, %d trials\n", len(report.Records), stats.Trials)
	fmt.Fprintf(out, "trials with violations: %d\n", stats.Failing)
	fmt.Fprintf(out, "total violations:       %d\n", stats.Violations)
	return nil
}

// trialStats aggregates violations over repeated orderings.
type trialStats struct {
	Trials     int
	Failing    int
	Violations int
}

func runTrials(o *ordering.Orderer, records []question.Record, n int) trialStats {
	stats := trialStats{Trials: n}
	for i := 0; i < n; i++ {
		v := ordering.Verify(o.Order(records))
		if len(v) > 0 {
			stats.Failing++
			stats.Violations += len(v)
		}
	}
	return stats
}

func printSequence(w io.Writer, seq []question.Record) {
	fmt.Fprintf(w, "%3s  %-24s  %-16s  %-16s  %-7s  %s\n", "#", "Source", "ID", "Follows", "Starter", "Title")
	fmt.Fprintln(w, strings.Repeat("\u2500", 110))

	for i, r := range seq {
		starter := ""
		if r.Starter {
			starter = "yes"
		}
		fmt.Fprintf(w, "%3d  %-24s  %-16s  %-16s  %-7s  %s\n",
			i+1,
			question.Truncate(r.Source, 21),
			question.Truncate(r.ID, 13),
			question.Truncate(r.FollowupTo, 13),
			starter,
			r.DisplayTitle(30))
	}

	fmt.Fprintf(w, "\n%d questions\n", len(seq))
}

func printViolations(w io.Writer, violations []ordering.Violation) {
	if len(violations) == 0 {
		fmt.Fprintln(w, "No ordering violations.")
		return
	}
	fmt.Fprintf(w, "%d ordering violations:\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(w, "  %s\n", v)
	}
}
