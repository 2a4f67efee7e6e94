// Package badge renders the completion badge and saves it to a file.
package badge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

// ErrNotEarned is returned when saving a badge the session did not qualify for.
var ErrNotEarned = errors.New("badge not earned")

// Render draws the badge for sum.
func Render(sum *session.Summary) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("★  SparkQuiz Badge  ★"),
		"",
		theme.Body.Render(fmt.Sprintf("Answered %d of %d questions (%d%%)",
			sum.Answered, sum.TotalQuestions, sum.CompletionPercentage)),
		theme.Body.Render(fmt.Sprintf("Score %d / %d points (%d%%)",
			sum.Score, sum.TotalPossible, sum.Percentage)),
		theme.Muted.Render(fmt.Sprintf("Earned %s in %s",
			sum.StartedAt.Format("2 Jan 2006"), FormatDuration(sum.Duration))),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 4).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// Save writes the badge to path as plain text and returns the absolute path.
func Save(path string, sum *session.Summary) (string, error) {
	if !sum.QualifiesForBadge {
		return "", ErrNotEarned
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("badge path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create badge dir: %w", err)
	}
	if err := os.WriteFile(abs, []byte(ansi.Strip(Render(sum))+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write badge: %w", err)
	}
	return abs, nil
}

// FormatDuration renders d rounded to the second, e.g. "4m12s".
func FormatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
