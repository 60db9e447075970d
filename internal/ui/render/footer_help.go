package render

import (
	"strings"

	textutil "github.com/kk-code-lab/rtab/internal/textutil"
)

// buildFooterHelpText returns the footer hint string with leading/trailing padding.
func buildFooterHelpText(hints []KeyHint) string {
	parts := buildFooterHelpSegments(hints)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

func buildFooterHelpSegments(hints []KeyHint) []string {
	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		if h.Keys == "" {
			continue
		}
		segments = append(segments, textutil.SanitizeTerminalText(h.Keys+": "+h.Desc))
	}
	if len(segments) > 0 {
		segments = append(segments, "?: help")
	}
	return segments
}
