package play

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"mathquiz/internal/markup"
)

// renderSegments flattens markup segments to display text. Math spans pass
// through the renderer and, when colors are on, get an italic accent so they
// stand out from the surrounding prose.
func renderSegments(segments []markup.Segment, renderer func(string) string, noColor bool) string {
	mathStyle := lipgloss.NewStyle().Italic(true)
	var out string
	for _, segment := range segments {
		if segment.Kind != markup.Math {
			out += segment.Text
			continue
		}
		text := segment.Text
		if renderer != nil {
			text = renderer(text)
		}
		if !noColor {
			text = mathStyle.Render(text)
		}
		out += text
	}
	return out
}

// optionLetter labels option index 0..3 as A..D.
func optionLetter(index int) string {
	return string(rune('A' + index))
}

// formatElapsed formats a duration in seconds for the score table.
func formatElapsed(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 1, 64) + "s"
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
