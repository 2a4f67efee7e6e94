// Package quiz implements the question screen.
package quiz

import (
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/sparkquiz/internal/router"
	"github.com/abhisek/sparkquiz/internal/screen"
	"github.com/abhisek/sparkquiz/internal/screens/questionlist"
	"github.com/abhisek/sparkquiz/internal/screens/results"
	"github.com/abhisek/sparkquiz/internal/session"
	"github.com/abhisek/sparkquiz/internal/ui/components"
	"github.com/abhisek/sparkquiz/internal/ui/layout"
)

// QuizScreen presents the current question of a session. All state lives in
// the session; the screen renders its snapshot.
type QuizScreen struct {
	sess   *session.Session
	logger zerolog.Logger

	badgeFile string

	confirmingExit bool
	exitFocusYes   bool
	notice         string
}

// Option configures a QuizScreen.
type Option func(*QuizScreen)

// WithBadgeFile lets the results screen save an earned badge to path.
func WithBadgeFile(path string) Option {
	return func(s *QuizScreen) {
		s.badgeFile = path
	}
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.ScoreProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for sess.
func New(sess *session.Session, logger zerolog.Logger, opts ...Option) *QuizScreen {
	s := &QuizScreen{sess: sess, logger: logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) HeaderScore() (int, int) {
	return s.sess.Score(), s.sess.TotalPossibleScore()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	k := components.Keys
	if s.confirmingExit {
		return components.Hints(k.Yes, k.No)
	}

	snap := s.sess.Snapshot()
	if !snap.Submitted {
		return components.Hints(k.Up, k.Submit, k.List, k.Exit)
	}

	next := k.Submit
	if snap.IsLast {
		next.SetHelp("Enter", "See results")
	} else {
		next.SetHelp("Enter", "Next question")
	}
	retry := k.Retry
	retry.SetEnabled(snap.CanRetry)
	return components.Hints(next, retry, k.List, k.Exit)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.confirmingExit {
		return s.handleExitDialog(kmsg)
	}
	return s.handleKey(kmsg)
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	k := components.Keys
	snap := s.sess.Snapshot()

	switch {
	case key.Matches(msg, k.Exit):
		return s.requestExit()

	case key.Matches(msg, k.List):
		s.notice = ""
		list := questionlist.New(s.sess)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: list} }

	case key.Matches(msg, k.Submit):
		if snap.Submitted {
			return s.advance()
		}
		return s.submit()

	case snap.Submitted && key.Matches(msg, k.Retry):
		if err := s.sess.Retry(); err != nil {
			s.notice = "This question can't be retried."
			return s, nil
		}
		s.notice = ""
		return s, nil
	}

	if snap.Submitted {
		return s, nil
	}

	list := s.answerList(snap, 0)
	list, _ = list.Update(msg)
	if list.Pending != snap.Pending && list.Pending >= 0 {
		if err := s.sess.SelectAnswer(list.Pending); err != nil {
			s.logger.Warn().Err(err).Msg("select answer")
		}
		s.notice = ""
	}
	return s, nil
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	if _, err := s.sess.Submit(); err != nil {
		if errors.Is(err, session.ErrNoSelection) {
			s.notice = "Please select an answer first."
			return s, nil
		}
		s.logger.Warn().Err(err).Msg("submit answer")
		return s, nil
	}
	s.notice = ""
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.sess.Advance(); err != nil {
		s.logger.Warn().Err(err).Msg("advance")
		return s, nil
	}
	if s.sess.Status() != session.StatusInProgress {
		return s, s.showResults()
	}
	return s, nil
}

func (s *QuizScreen) requestExit() (screen.Screen, tea.Cmd) {
	if s.sess.NeedsExitConfirmation() {
		s.confirmingExit = true
		s.exitFocusYes = false
		return s, nil
	}
	return s.exit(false)
}

func (s *QuizScreen) handleExitDialog(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	k := components.Keys
	switch {
	case key.Matches(msg, k.Yes):
		return s.exit(true)
	case key.Matches(msg, k.No):
		s.confirmingExit = false
	case msg.String() == "left" || msg.String() == "right" || msg.String() == "tab":
		s.exitFocusYes = !s.exitFocusYes
	case key.Matches(msg, k.Submit):
		if s.exitFocusYes {
			return s.exit(true)
		}
		s.confirmingExit = false
	}
	return s, nil
}

func (s *QuizScreen) exit(confirmed bool) (screen.Screen, tea.Cmd) {
	s.confirmingExit = false
	exited, err := s.sess.Exit(confirmed)
	if err != nil {
		s.logger.Warn().Err(err).Msg("exit")
		return s, nil
	}
	if !exited {
		return s, nil
	}
	return s, s.showResults()
}

func (s *QuizScreen) showResults() tea.Cmd {
	sess, logger, badgeFile := s.sess, s.logger, s.badgeFile
	restart := func() screen.Screen {
		sess.Restart()
		return New(sess, logger, WithBadgeFile(badgeFile))
	}
	res := results.New(sess, restart, results.WithBadgeFile(badgeFile))
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: res} }
}
