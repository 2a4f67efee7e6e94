// Package router keeps the stack of screens the quiz navigates through.
package router

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/sparkquiz/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one, e.g. the question
// list over the quiz.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the screen underneath.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen, used for one-way moves such as
// loading -> quiz -> results.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the screen stack. The bottom screen is never popped.
type Router struct {
	stack  []screen.Screen
	logger zerolog.Logger
}

// New creates a Router showing initial.
func New(initial screen.Screen, logger zerolog.Logger) *Router {
	return &Router{
		stack:  []screen.Screen{initial},
		logger: logger,
	}
}

// Push opens s on top of the stack and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	r.trace("push", s)
	return s.Init()
}

// Pop closes the top screen unless it is the last one.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) < 2 {
		return nil
	}
	top := r.stack[len(r.stack)-1]
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	r.trace("pop", top)
	return nil
}

// Replace swaps the top screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = append(r.stack, s)
	} else {
		r.stack[len(r.stack)-1] = s
	}
	r.trace("replace", s)
	return s.Init()
}

// Active returns the top screen, or nil for an empty stack.
func (r *Router) Active() screen.Screen {
	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	return nil
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	next, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen into a width x height area.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}

func (r *Router) trace(op string, s screen.Screen) {
	r.logger.Debug().
		Str("op", op).
		Str("screen", s.Title()).
		Int("depth", len(r.stack)).
		Msg("navigate")
}
