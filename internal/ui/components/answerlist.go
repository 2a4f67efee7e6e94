package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparkquiz/internal/question"
	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

// AnswerList is a single-choice answer selector. Options are in display order.
type AnswerList struct {
	Options []question.AnswerOption

	// Pending is the highlighted option, -1 when nothing is selected.
	Pending int

	// Revealed switches the view to feedback mode once an answer is submitted.
	Revealed bool
	// Chosen is the submitted option, -1 when none.
	Chosen int
	// AlsoCorrect marks other correct options to reveal after a wrong answer.
	AlsoCorrect map[int]bool

	Width int
}

// NewAnswerList creates an answer list with nothing selected.
func NewAnswerList(options []question.AnswerOption, width int) AnswerList {
	return AnswerList{
		Options: options,
		Pending: -1,
		Chosen:  -1,
		Width:   width,
	}
}

// Update moves the selection with the arrow keys or a digit. Selection is
// frozen once the list is revealed.
func (a AnswerList) Update(msg tea.Msg) (AnswerList, tea.Cmd) {
	if a.Revealed || len(a.Options) == 0 {
		return a, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch {
	case key.Matches(kmsg, Keys.Up):
		if a.Pending < 0 {
			a.Pending = len(a.Options) - 1
		} else if a.Pending > 0 {
			a.Pending--
		}
	case key.Matches(kmsg, Keys.Down):
		if a.Pending < len(a.Options)-1 {
			a.Pending++
		}
	default:
		if d := Digit(kmsg.String()); d >= 0 && d < len(a.Options) {
			a.Pending = d
		}
	}
	return a, nil
}

// View renders the options, with per-option feedback when revealed.
func (a AnswerList) View() string {
	var b strings.Builder
	textWidth := a.Width - 6
	if textWidth < 20 {
		textWidth = 20
	}

	for i, opt := range a.Options {
		marker := "( )"
		if i == a.Pending || (a.Revealed && i == a.Chosen) {
			marker = "(•)"
		}
		prefix := "  "
		if !a.Revealed && i == a.Pending {
			prefix = "▸ "
		}

		base := theme.Unselected
		switch {
		case !a.Revealed && i == a.Pending:
			base = theme.Selected
		case a.Revealed && i == a.Chosen && opt.Correct:
			base = theme.Correct
		case a.Revealed && i == a.Chosen:
			base = theme.Incorrect
		case a.Revealed && a.AlsoCorrect[i]:
			base = theme.Correct.Bold(false)
		case a.Revealed:
			base = theme.Muted
		}

		label := base.Render(fmt.Sprintf("%s%d) %s ", prefix, i+1, marker))
		text := lipgloss.NewStyle().Width(textWidth).Render(FormatText(opt.Text, base))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, text))
		b.WriteString("\n")

		if fb := a.feedback(i, opt); fb != "" {
			b.WriteString(lipgloss.NewStyle().PaddingLeft(9).Width(a.Width).Render(fb))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a AnswerList) feedback(i int, opt question.AnswerOption) string {
	if !a.Revealed {
		return ""
	}
	switch {
	case i == a.Chosen && opt.Correct:
		line := fmt.Sprintf("Correct! +%d pts", opt.Value())
		if opt.Message != "" {
			line += " " + opt.Message
		}
		return FormatText(line, theme.Correct.Bold(false))
	case i == a.Chosen:
		line := "Incorrect."
		if opt.Message != "" {
			line += " " + opt.Message
		}
		return FormatText(line, theme.Incorrect.Bold(false))
	case a.AlsoCorrect[i]:
		line := fmt.Sprintf("Also correct (%d pts)", opt.Value())
		if opt.Message != "" {
			line += ": " + opt.Message
		}
		return FormatText(line, theme.Correct.Bold(false))
	}
	return ""
}
