// Package loading shows progress while questions load and the terminal
// error display when they cannot be loaded.
package loading

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/sparkquiz/internal/router"
	"github.com/abhisek/sparkquiz/internal/screen"
	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/ui/components"
	"github.com/abhisek/sparkquiz/internal/ui/layout"
	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

// StartFunc loads, orders and wraps the questions in a session.
type StartFunc func(ctx context.Context) (*session.Session, error)

// NextFunc builds the screen shown once the session is ready.
type NextFunc func(*session.Session) screen.Screen

// loadedMsg is sent when StartFunc returns.
type loadedMsg struct {
	Session *session.Session
	Err     error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// LoadingScreen runs the start function and hands over to the next screen.
type LoadingScreen struct {
	start  StartFunc
	next   NextFunc
	logger zerolog.Logger
	frame  int
	err    error
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)

// New creates a LoadingScreen.
func New(start StartFunc, next NextFunc, logger zerolog.Logger) *LoadingScreen {
	return &LoadingScreen{start: start, next: next, logger: logger}
}

func (s *LoadingScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), tick())
}

func (s *LoadingScreen) Title() string {
	if s.err != nil {
		return "Error"
	}
	return "Loading"
}

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	if s.err != nil {
		quit := components.Keys.Exit
		quit.SetHelp("Q", "Quit")
		return components.Hints(quit, components.Keys.Quit)
	}
	return components.Hints(components.Keys.Quit)
}

// Err returns the load failure, if any.
func (s *LoadingScreen) Err() error {
	return s.err
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.err = msg.Err
			s.logger.Error().Err(msg.Err).Msg("failed to load questions")
			return s, nil
		}
		next := s.next(msg.Session)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case spinnerTickMsg:
		if s.err != nil {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, tick()

	case tea.KeyMsg:
		// The failure display is terminal; quitting is the only action.
		if s.err != nil && key.Matches(msg, components.Keys.Exit, components.Keys.Submit) {
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *LoadingScreen) View(width, height int) string {
	if s.err != nil {
		return renderError(width, height, s.err)
	}
	line := lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.frame]) +
		theme.Muted.Render("  Loading questions...")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
}

func renderError(width, height int, err error) string {
	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("Could not load the quiz"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(min(width-8, 70)).Render(err.Error()))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Check the question source and try again."))

	box := theme.Dialog.BorderForeground(theme.Error).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (s *LoadingScreen) load() tea.Cmd {
	return func() tea.Msg {
		sess, err := s.start(context.Background())
		return loadedMsg{Session: sess, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
