package loading

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/abhisek/sparkquiz/internal/question"
	"github.com/abhisek/sparkquiz/internal/router"
	"github.com/abhisek/sparkquiz/internal/screen"
	"github.com/abhisek/sparkquiz/internal/session"
)

type stubScreen struct{ sess *session.Session }

func (s *stubScreen) Init() tea.Cmd                            { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "stub" }
func (s *stubScreen) Title() string                           { return "stub" }

func testSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New([]question.Record{{
		Type:     question.TypeQuiz,
		Question: "Q?",
		Answers:  []question.AnswerOption{{Text: "a", Correct: true}},
	}}, session.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return sess
}

func next(sess *session.Session) screen.Screen { return &stubScreen{sess: sess} }

func TestLoadingScreen_Success(t *testing.T) {
	sess := testSession(t)
	s := New(func(context.Context) (*session.Session, error) { return sess, nil }, next, zerolog.Nop())

	msg := s.load()()
	_, cmd := s.Update(msg)
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if replace.Screen.(*stubScreen).sess != sess {
		t.Error("expected the loaded session to be handed over")
	}
}

func TestLoadingScreen_Failure(t *testing.T) {
	loadErr := errors.New("no valid quiz questions found")
	s := New(func(context.Context) (*session.Session, error) { return nil, loadErr }, next, zerolog.Nop())

	_, cmd := s.Update(s.load()())
	if cmd != nil {
		t.Error("expected no command after a failed load")
	}
	if !errors.Is(s.Err(), loadErr) {
		t.Errorf("Err = %v, want %v", s.Err(), loadErr)
	}
	if s.Title() != "Error" {
		t.Errorf("Title = %q, want Error", s.Title())
	}

	view := ansi.Strip(s.View(80, 24))
	if !strings.Contains(view, "Could not load the quiz") {
		t.Errorf("expected error heading in view:\n%s", view)
	}
	if !strings.Contains(view, "no valid quiz questions found") {
		t.Errorf("expected error message in view:\n%s", view)
	}

	// Ticks stop once the error is shown.
	if _, cmd := s.Update(spinnerTickMsg{}); cmd != nil {
		t.Error("expected spinner to stop after failure")
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLoadingScreen_SpinnerAdvances(t *testing.T) {
	s := New(nil, next, zerolog.Nop())
	_, cmd := s.Update(spinnerTickMsg{})
	if cmd == nil {
		t.Error("expected next tick")
	}
	if s.frame != 1 {
		t.Errorf("frame = %d, want 1", s.frame)
	}
	if !strings.Contains(ansi.Strip(s.View(80, 24)), "Loading questions") {
		t.Error("expected loading text")
	}
}
