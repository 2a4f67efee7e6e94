// Package results shows the score, badge status and per-question breakdown.
package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparkquiz/internal/badge"
	"github.com/abhisek/sparkquiz/internal/router"
	"github.com/abhisek/sparkquiz/internal/screen"
	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/ui/components"
	"github.com/abhisek/sparkquiz/internal/ui/layout"
	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

// RestartFunc restarts the session and returns the screen to show next.
type RestartFunc func() screen.Screen

// ResultsScreen displays the session summary.
type ResultsScreen struct {
	summary     *session.Summary
	restart     RestartFunc
	badgeFile   string
	notice      string
	showDetails bool
	viewport    viewport.Model
}

// Option configures a ResultsScreen.
type Option func(*ResultsScreen)

// WithBadgeFile enables saving an earned badge to path.
func WithBadgeFile(path string) Option {
	return func(s *ResultsScreen) {
		s.badgeFile = path
	}
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.ScoreProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen from the current state of sess.
func New(sess *session.Session, restart RestartFunc, opts ...Option) *ResultsScreen {
	s := &ResultsScreen{
		summary:  sess.Summary(),
		restart:  restart,
		viewport: viewport.New(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *ResultsScreen) canSaveBadge() bool {
	return s.summary.QualifiesForBadge && s.badgeFile != ""
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	if s.summary.Complete {
		return "Quiz Complete!"
	}
	return "Quiz Results"
}

func (s *ResultsScreen) HeaderScore() (int, int) {
	return s.summary.Score, s.summary.TotalPossible
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	k := components.Keys
	details := k.Details
	if s.showDetails {
		details.SetHelp("D", "Hide details")
	} else {
		details.SetHelp("D", "Show details")
	}
	save := k.Badge
	save.SetEnabled(s.canSaveBadge())
	quit := k.Exit
	quit.SetHelp("Q", "Quit")
	return components.Hints(details, save, k.Restart, quit)
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	k := components.Keys
	switch {
	case key.Matches(kmsg, k.Details):
		s.showDetails = !s.showDetails
		s.viewport.GotoTop()
		return s, nil
	case s.canSaveBadge() && key.Matches(kmsg, k.Badge):
		path, err := badge.Save(s.badgeFile, s.summary)
		if err != nil {
			s.notice = "Could not save badge: " + err.Error()
		} else {
			s.notice = "Badge saved to " + path
		}
		return s, nil
	case key.Matches(kmsg, k.Restart):
		if s.restart == nil {
			return s, nil
		}
		next := s.restart()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case key.Matches(kmsg, k.Exit):
		return s, tea.Quit
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) View(width, height int) string {
	s.viewport.SetWidth(width)
	s.viewport.SetHeight(height)
	s.viewport.SetContent(s.render(width))
	return s.viewport.View()
}

func (s *ResultsScreen) render(width int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(s.Title()))
	b.WriteString("\n\n")

	score := fmt.Sprintf("%d / %d points  (%d%%)", sum.Score, sum.TotalPossible, sum.Percentage)
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.Accent).Bold(true).Render(score))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Questions answered: %d of %d  ·  Time: %s",
			sum.Answered, sum.TotalQuestions, badge.FormatDuration(sum.Duration))))
	b.WriteString("\n\n")

	if sum.QualifiesForBadge {
		b.WriteString(components.Centered(badge.Render(sum), width))
	} else {
		b.WriteString(components.Centered(components.Card(s.renderBadgeProgress(), cw), width))
	}
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString(components.Centered(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice), width))
		b.WriteString("\n")
	}

	if s.showDetails {
		b.WriteString("\n")
		b.WriteString(components.Centered(s.renderBreakdown(cw), width))
	}
	return b.String()
}

func (s *ResultsScreen) renderBadgeProgress() string {
	sum := s.summary
	remaining := sum.BadgeRequirement - sum.Answered
	return theme.Muted.Render(fmt.Sprintf(
		"Answer at least %d of %d questions to earn the badge (%d more).",
		sum.BadgeRequirement, sum.TotalQuestions, remaining))
}

func (s *ResultsScreen) renderBreakdown(cw int) string {
	var b strings.Builder
	for i, o := range s.summary.Breakdown {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("%d. %s", o.Index+1, o.Title)))
		b.WriteString("\n")

		switch {
		case o.State != session.StateAnswered:
			b.WriteString(theme.Muted.Render(fmt.Sprintf("   Not answered - 0/%d points", o.MaxPoints)))
		case o.Correct:
			b.WriteString(theme.Correct.Render(fmt.Sprintf("   Correct - %d/%d points", o.PointsEarned, o.MaxPoints)))
		default:
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("   Incorrect - %d/%d points", o.PointsEarned, o.MaxPoints)))
		}
		b.WriteString("\n")

		if o.State == session.StateAnswered {
			answer := components.FormatText("Your answer: "+o.SelectedText, theme.Hint)
			b.WriteString(lipgloss.NewStyle().PaddingLeft(3).Width(cw).Render(answer))
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Width(cw).Render(b.String())
}
