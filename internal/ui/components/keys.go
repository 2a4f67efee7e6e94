package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/sparkquiz/internal/ui/layout"
)

// KeyMap holds every key binding used by the screens.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Submit  key.Binding
	Retry   key.Binding
	List    key.Binding
	Exit    key.Binding
	Yes     key.Binding
	No      key.Binding
	Details key.Binding
	Restart key.Binding
	Badge   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑↓", "Choose"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "Down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Submit"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("R", "Retry"),
		),
		List: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("L", "Questions"),
		),
		Exit: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("Esc", "Exit quiz"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("Y", "Exit"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("N", "Keep going"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("D", "Details"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("R", "Restart"),
		),
		Badge: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("B", "Save badge"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit"),
		),
	}
}

// Keys is the shared key map.
var Keys = DefaultKeyMap()

// Hints converts enabled bindings into footer hints.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

// Digit returns the zero-based index for keys "1" to "9", or -1.
func Digit(k string) int {
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		return int(k[0] - '1')
	}
	return -1
}
