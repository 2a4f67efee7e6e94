// Package layout draws the chrome around every screen: a header with the
// running score and a footer with key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

// Smallest terminal the quiz card fits in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// AppName is shown at the left of the header.
const AppName = "SparkQuiz"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Frame describes what the header and footer show for the active screen.
type Frame struct {
	Title string

	// ShowScore enables the "★ score/total pts" badge in the header.
	ShowScore bool
	Score     int
	Total     int

	Hints []KeyHint
}

// DefaultHints is the footer for screens that provide no hints.
var DefaultHints = []KeyHint{{Key: "Ctrl+C", Description: "Quit"}}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Render draws the frame at width x height. body is called with the space
// left between header and footer.
func (f Frame) Render(width, height int, body func(width, height int) string) string {
	if IsTooSmall(width, height) {
		return tooSmall(width, height)
	}

	header := f.header(width)
	footer := f.footer(width)

	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (f Frame) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + AppName)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	right := ""
	if f.ShowScore {
		right = lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("★ %d/%d pts", f.Score, f.Total))
	}

	// Keep the title centred; the score takes whatever is left on the right.
	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)

	return bar(width).Render(left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right)
}

func (f Frame) footer(width int) string {
	hints := f.Hints
	if len(hints) == 0 {
		hints = DefaultHints
	}

	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

func tooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nThe quiz needs at least %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}
