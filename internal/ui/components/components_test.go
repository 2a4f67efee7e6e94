package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparkquiz/internal/question"
)

func keyPress(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestFormatText_StripsMarkers(t *testing.T) {
	out := ansi.Strip(FormatText("Use **bold**, *em* and `code` <b>here</b>", lipgloss.NewStyle()))
	assert.Equal(t, "Use bold, em and code here", out)
}

func TestFormatText_KeepsNewlines(t *testing.T) {
	out := ansi.Strip(FormatText("line one\nline **two**", lipgloss.NewStyle()))
	assert.Equal(t, "line one\nline two", out)
}

func TestFormatText_CodeWinsOverEmphasis(t *testing.T) {
	out := ansi.Strip(FormatText("run `a*b*c` now", lipgloss.NewStyle()))
	assert.Equal(t, "run a*b*c now", out)
}

func TestFormatText_Plain(t *testing.T) {
	out := ansi.Strip(FormatText("nothing special", lipgloss.NewStyle()))
	assert.Equal(t, "nothing special", out)
}

func options() []question.AnswerOption {
	return []question.AnswerOption{
		{Text: "alpha", Correct: true, Points: 2, Message: "Nice."},
		{Text: "beta", Message: "Nope."},
		{Text: "gamma", Correct: true, Points: 3, Message: "Best."},
	}
}

func TestAnswerList_Navigation(t *testing.T) {
	a := NewAnswerList(options(), 60)
	require.Equal(t, -1, a.Pending)

	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, a.Pending)
	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, a.Pending, "stops at the last option")

	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, a.Pending)

	a, _ = a.Update(keyPress("1"))
	assert.Equal(t, 0, a.Pending)

	a, _ = a.Update(keyPress("9"))
	assert.Equal(t, 0, a.Pending, "out-of-range digit is ignored")
}

func TestAnswerList_UpFromNothingSelectsLast(t *testing.T) {
	a := NewAnswerList(options(), 60)
	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 2, a.Pending)
}

func TestAnswerList_FrozenWhenRevealed(t *testing.T) {
	a := NewAnswerList(options(), 60)
	a.Pending, a.Chosen, a.Revealed = 1, 1, true

	a, _ = a.Update(keyPress("3"))
	assert.Equal(t, 1, a.Pending)
}

func TestAnswerList_RevealedFeedback(t *testing.T) {
	a := NewAnswerList(options(), 80)
	a.Pending, a.Chosen, a.Revealed = 1, 1, true
	a.AlsoCorrect = map[int]bool{0: true, 2: true}

	view := ansi.Strip(a.View())
	assert.Contains(t, view, "Incorrect. Nope.")
	assert.Contains(t, view, "Also correct (2 pts): Nice.")
	assert.Contains(t, view, "Also correct (3 pts): Best.")
}

func TestAnswerList_CorrectFeedback(t *testing.T) {
	a := NewAnswerList(options(), 80)
	a.Pending, a.Chosen, a.Revealed = 2, 2, true

	view := ansi.Strip(a.View())
	assert.Contains(t, view, "Correct! +3 pts Best.")
	assert.NotContains(t, view, "Also correct")
}

func TestAnswerList_ViewNumbersOptions(t *testing.T) {
	view := ansi.Strip(NewAnswerList(options(), 60).View())
	assert.Contains(t, view, "1) ( ) alpha")
	assert.Contains(t, view, "3) ( ) gamma")
}

func TestMenu(t *testing.T) {
	var chosen string
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = s
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "one", Disabled: true},
		{Label: "two", Action: pick("two")},
		{Label: "three", Action: pick("three"), Detail: "Answered"},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected, "disabled items are skipped")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "three", chosen)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "▸ three  Answered")
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar("Progress", 3, 4, 40)
	assert.InDelta(t, 0.75, p.Fraction(), 0.001)
	assert.Contains(t, ansi.Strip(p.View()), "3/4")

	assert.Zero(t, NewProgressBar("", 1, 0, 40).Fraction())
	assert.Equal(t, 1.0, NewProgressBar("", 9, 4, 40).Fraction())
}

func TestHints(t *testing.T) {
	retry := Keys.Retry
	retry.SetEnabled(false)
	hints := Hints(Keys.Submit, retry, Keys.Exit)

	require.Len(t, hints, 2)
	assert.Equal(t, "Enter", hints[0].Key)
	assert.Equal(t, "Esc", hints[1].Key)
}

func TestDigit(t *testing.T) {
	assert.Equal(t, 0, Digit("1"))
	assert.Equal(t, 8, Digit("9"))
	assert.Equal(t, -1, Digit("0"))
	assert.Equal(t, -1, Digit("12"))
	assert.Equal(t, -1, Digit("a"))
}

func TestCardWidth(t *testing.T) {
	assert.Equal(t, MaxContentWidth, ContentWidth(300))
	assert.Equal(t, 20, ContentWidth(10))
	assert.True(t, strings.Contains(ansi.Strip(Card("hi", 30)), "hi"))
}
