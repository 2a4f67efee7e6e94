package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

// MaxContentWidth caps the width of question and result cards.
const MaxContentWidth = 96

// ContentWidth returns the inner width used for cards at the given frame width.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card of content width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Centered places content horizontally centered in width.
func Centered(content string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
