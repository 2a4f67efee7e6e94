// Package questionlist lets the user jump to any question.
package questionlist

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparkquiz/internal/router"
	"github.com/abhisek/sparkquiz/internal/screen"
	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/ui/components"
	"github.com/abhisek/sparkquiz/internal/ui/layout"
	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

// QuestionListScreen lists every question with its status.
type QuestionListScreen struct {
	sess *session.Session
	menu components.Menu
	err  string
}

var _ screen.Screen = (*QuestionListScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionListScreen)(nil)

// New creates the list with the current question selected.
func New(sess *session.Session) *QuestionListScreen {
	s := &QuestionListScreen{sess: sess}
	entries := sess.Entries()
	items := make([]components.MenuItem, len(entries))
	for i, e := range entries {
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%2d. %s", e.Index+1, e.Title),
			Detail: e.Status.String(),
			Action: s.jump(e.Index),
		}
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = sess.Position()
	return s
}

func (s *QuestionListScreen) jump(index int) func() tea.Cmd {
	return func() tea.Cmd {
		if err := s.sess.Jump(index); err != nil {
			s.err = err.Error()
			return nil
		}
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
}

func (s *QuestionListScreen) Init() tea.Cmd {
	return nil
}

func (s *QuestionListScreen) Title() string {
	return "Questions"
}

func (s *QuestionListScreen) KeyHints() []layout.KeyHint {
	k := components.Keys
	jump := k.Submit
	jump.SetHelp("Enter", "Go to question")
	back := k.Exit
	back.SetHelp("Esc", "Back")
	return components.Hints(k.Up, jump, back)
}

func (s *QuestionListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *QuestionListScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Question List"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf(
		"Answered %d of %d", s.sess.AnsweredCount(), s.sess.Len())))
	b.WriteString("\n\n")

	menu := s.menu.View()
	// Keep the selected row visible on long lists.
	lines := strings.Split(strings.TrimRight(menu, "\n"), "\n")
	room := height - 5
	if room > 0 && len(lines) > room {
		start := s.menu.Selected - room/2
		start = max(0, min(start, len(lines)-room))
		lines = lines[start : start+room]
	}
	b.WriteString(components.Centered(
		lipgloss.NewStyle().Width(components.ContentWidth(width)).Render(strings.Join(lines, "\n")), width))

	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.err))
	}
	return b.String()
}
