package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparkquiz/internal/question"
	"github.com/abhisek/sparkquiz/internal/source"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every question file and report problems",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, ctx, closeLog, err := setupCLI(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	report, err := loadReport(ctx, cfg)
	if report != nil {
		printReport(cmd.OutOrStdout(), report)
	}
	if err != nil {
		if errors.Is(err, source.ErrNoQuestions) {
			return fmt.Errorf("validate: %w", err)
		}
		return err
	}
	return nil
}

func printReport(w io.Writer, report *source.Report) {
	if len(report.Failed) > 0 {
		fmt.Fprintf(w, "%-40s  %s\n", "Ref", "Error")
		fmt.Fprintln(w, strings.Repeat("\u2500", 100))
		for _, f := range report.Failed {
			fmt.Fprintf(w, "%-40s  %v\n", f.Ref, f.Err)
		}
		fmt.Fprintln(w)
	}

	for _, ref := range report.Skipped {
		fmt.Fprintf(w, "skipped (not a quiz question): %s\n", ref)
	}

	for _, p := range referenceProblems(report.Records) {
		fmt.Fprintf(w, "warning: %s\n", p)
	}

	fmt.Fprintf(w, "%d valid, %d skipped, %d failed (%d total)\n",
		len(report.Records), len(report.Skipped), len(report.Failed), report.Total())
}

// referenceProblems lists duplicate IDs and follow-ups whose parent was not
// loaded. Neither stops a quiz; ordering places such follow-ups anyway.
func referenceProblems(records []question.Record) []string {
	seen := make(map[string]string)
	var problems []string
	for _, r := range records {
		if !r.HasID() {
			continue
		}
		if first, dup := seen[r.ID]; dup {
			problems = append(problems, fmt.Sprintf("%s reuses id %q from %s", r.Source, r.ID, first))
			continue
		}
		seen[r.ID] = r.Source
	}
	for _, r := range records {
		if r.IsFollowup() {
			if _, ok := seen[r.FollowupTo]; !ok {
				problems = append(problems, fmt.Sprintf("%s follows up on unknown id %q", r.Source, r.FollowupTo))
			}
		}
	}
	return problems
}
