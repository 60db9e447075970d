package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += runeCells(ru)
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += runeCells(ru)
	}
	return width
}

// Truncate cuts text to at most width cells, marking the cut with a
// trailing "~" the way long names are shortened in columns.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}

	var builder strings.Builder
	used := 0
	for _, ru := range text {
		w := runeCells(ru)
		if used+w > width-1 {
			break
		}
		builder.WriteRune(ru)
		used += w
	}
	builder.WriteByte('~')
	return builder.String()
}

// PadRight truncates or pads text with spaces to exactly width cells.
func PadRight(text string, width int) string {
	text = Truncate(text, width)
	if gap := width - DisplayWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

func runeCells(ru rune) int {
	if w := runewidth.RuneWidth(ru); w > 0 {
		return w
	}
	return 1
}
