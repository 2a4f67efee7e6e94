package app

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/sparkquiz/internal/router"
	"github.com/abhisek/sparkquiz/internal/screen"
	"github.com/abhisek/sparkquiz/internal/screens/loading"
	"github.com/abhisek/sparkquiz/internal/screens/quiz"
	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/ui/components"
	"github.com/abhisek/sparkquiz/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	// Start loads the questions and creates the session.
	Start loading.StartFunc

	// Logger must not write to the terminal while the program runs.
	Logger zerolog.Logger

	// BadgeFile is where the results screen saves an earned badge.
	BadgeFile string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel that opens on the loading screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	next := func(sess *session.Session) screen.Screen {
		return quiz.New(sess, logger, quiz.WithBadgeFile(opts.BadgeFile))
	}
	return AppModel{
		router: router.New(loading.New(opts.Start, next, logger), logger),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, components.Keys.Quit):
			return m, tea.Quit
		case msg.String() == "esc" && m.router.Depth() > 1:
			return m, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	var frame layout.Frame
	if active := m.router.Active(); active != nil {
		frame.Title = active.Title()
		if sp, ok := active.(screen.ScoreProvider); ok {
			frame.ShowScore = true
			frame.Score, frame.Total = sp.HeaderScore()
		}
		if hp, ok := active.(screen.KeyHintProvider); ok {
			frame.Hints = hp.KeyHints()
		}
	}
	return frame.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
