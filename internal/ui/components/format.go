package components

import (
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sparkquiz/internal/question"
	"github.com/abhisek/sparkquiz/internal/ui/theme"
)

// inlinePattern matches `code`, **bold** and *em* spans, leftmost first.
var inlinePattern = regexp.MustCompile("`([^`]+)`|\\*\\*(.+?)\\*\\*|\\*(.+?)\\*")

// FormatText renders markdown-lite text in base: **bold**, *em* and `code`
// spans are styled and HTML tags are dropped. Newlines are kept.
func FormatText(s string, base lipgloss.Style) string {
	s = question.StripTags(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = formatLine(line, base)
	}
	return strings.Join(lines, "\n")
}

func formatLine(line string, base lipgloss.Style) string {
	var b strings.Builder
	last := 0
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(line, -1) {
		if m[0] > last {
			b.WriteString(base.Render(line[last:m[0]]))
		}
		switch {
		case m[2] >= 0:
			b.WriteString(theme.Code.Render(line[m[2]:m[3]]))
		case m[4] >= 0:
			b.WriteString(base.Bold(true).Render(line[m[4]:m[5]]))
		default:
			b.WriteString(base.Italic(true).Render(line[m[6]:m[7]]))
		}
		last = m[1]
	}
	if last < len(line) {
		b.WriteString(base.Render(line[last:]))
	}
	return b.String()
}
