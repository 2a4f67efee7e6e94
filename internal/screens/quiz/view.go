package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparkquiz/internal/question"
	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/ui/components"
	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

const multipleCorrectHint = "Tip: this question has multiple correct answers with different point values. Choose the best answer for maximum points."

// answerList builds the answer selector for a snapshot.
func (s *QuizScreen) answerList(snap session.Snapshot, width int) components.AnswerList {
	opts := make([]question.AnswerOption, len(snap.Answers))
	for i, a := range snap.Answers {
		opts[i] = a.Option
	}
	list := components.NewAnswerList(opts, width)
	list.Pending = snap.Pending
	if !snap.Submitted || snap.Selected == nil {
		return list
	}

	list.Revealed = true
	also := make(map[int]bool, len(snap.AlsoCorrect))
	for pos, a := range snap.Answers {
		if a.Index == snap.Selected.Index {
			list.Chosen = pos
		}
		for _, ac := range snap.AlsoCorrect {
			if ac.Index == a.Index {
				also[pos] = true
			}
		}
	}
	list.AlsoCorrect = also
	return list
}

func (s *QuizScreen) View(width, height int) string {
	if s.confirmingExit {
		return s.renderExitDialog(width, height)
	}

	snap := s.sess.Snapshot()
	cw := components.ContentWidth(width)
	q := snap.Question

	var b strings.Builder

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", snap.Index+1, snap.Total),
		snap.Answered, snap.Total, cw)
	b.WriteString(components.Centered(progress.View(), width))
	b.WriteString("\n\n")

	var card strings.Builder
	card.WriteString(theme.LevelBadge(q.LevelOrDefault()))
	if q.Title != "" {
		card.WriteString("  ")
		card.WriteString(theme.Title.Render(q.Title))
	}
	card.WriteString("\n\n")

	inner := cw - 6
	if q.Context != "" {
		card.WriteString(theme.Context.Width(inner).Render(components.FormatText(q.Context, theme.Muted)))
		card.WriteString("\n\n")
	}

	card.WriteString(lipgloss.NewStyle().Width(inner).Render(
		components.FormatText(q.Question, theme.Body.Bold(true))))
	card.WriteString("\n")

	if q.MultipleCorrect() {
		card.WriteString("\n")
		card.WriteString(theme.Hint.Width(inner).Render(multipleCorrectHint))
		card.WriteString("\n")
	}

	card.WriteString("\n")
	card.WriteString(s.answerList(snap, inner).View())

	if s.notice != "" {
		card.WriteString("\n")
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	}

	b.WriteString(components.Centered(components.Card(card.String(), cw), width))
	b.WriteString("\n")

	status := fmt.Sprintf("Answered %d of %d", snap.Answered, snap.Total)
	if snap.State == session.StateAnswered && !snap.Submitted {
		status += "  ·  retrying; your new answer replaces the earlier one"
	}
	b.WriteString(components.Centered(theme.Muted.Render(status), width))

	return b.String()
}

func (s *QuizScreen) renderExitDialog(width, height int) string {
	answered := s.sess.AnsweredCount()
	total := s.sess.Len()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Exit the quiz?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"You have answered %d of %d questions.\nYour results will be shown with the answers so far.", answered, total)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		components.NewButton("Exit quiz", s.exitFocusYes).View(),
		"  ",
		components.NewButton("Keep going", !s.exitFocusYes).View(),
	))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Dialog.Render(b.String()))
}
