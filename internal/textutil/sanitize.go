// Package textutil prepares untrusted text (file names, file contents,
// command output) for drawing into terminal cells.
package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// formatRuneNames labels the invisible runes most often used to disguise a
// file name. Other format runes are shown by code point.
var formatRuneNames = map[rune]string{
	0x00AD: "SHY",
	0x061C: "ALM",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2060: "WJ",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0xFEFF: "BOM",
}

// SanitizeTerminalText makes text safe to draw on a single row. C0 and C1
// control characters become '?', line breaks and tabs become spaces, and
// invisible format runes are made visible as ⟪NAME⟫.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, needsEscape) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r' || r == 0x2028 || r == 0x2029:
			b.WriteByte(' ')
		case isControl(r):
			b.WriteByte('?')
		case unicode.Is(unicode.Cf, r):
			b.WriteString(formatRuneLabel(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(r rune) bool {
	return isControl(r) || r == 0x2028 || r == 0x2029 || unicode.Is(unicode.Cf, r)
}

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7f && r < 0xa0)
}

func formatRuneLabel(r rune) string {
	if name, ok := formatRuneNames[r]; ok {
		return "⟪" + name + "⟫"
	}
	return fmt.Sprintf("⟪U+%04X⟫", r)
}
