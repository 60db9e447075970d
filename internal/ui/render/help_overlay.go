package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/rtab/internal/textutil"
)

var navigationHelp = []KeyHint{
	{Keys: "↑/↓ j/k", Desc: "Move cursor"},
	{Keys: "→/l ↵", Desc: "Enter directory"},
	{Keys: "←/h", Desc: "Parent directory"},
	{Keys: "g/G", Desc: "First / last entry"},
	{Keys: "Space", Desc: "Toggle selection"},
	{Keys: "Esc", Desc: "Clear selection"},
	{Keys: "~", Desc: "Go home"},
}

var tabHelp = []KeyHint{
	{Keys: "t", Desc: "New tab"},
	{Keys: "Tab / S-Tab", Desc: "Next / previous tab"},
	{Keys: "W", Desc: "Close tab"},
}

func buildHelpOverlayLines(hints []KeyHint) []string {
	sections := []struct {
		title   string
		entries []KeyHint
	}{
		{"Navigation", navigationHelp},
		{"Tabs", tabHelp},
		{"Commands", hints},
		{"Exit", []KeyHint{{Keys: "q", Desc: "Quit"}, {Keys: "?", Desc: "Close this help"}}},
	}

	lines := make([]string, 0, 32)
	for _, section := range sections {
		if len(section.entries) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry KeyHint) string {
	key := textutil.SanitizeTerminalText(entry.Keys)
	desc := textutil.SanitizeTerminalText(entry.Desc)
	return "  " + textutil.PadRight(key, 14) + " " + desc
}

func (r *Renderer) drawHelpOverlay(view *View, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, w, y, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	if titleWidth := r.textWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawText(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines(view.Hints) {
		if row >= h-1 {
			break
		}
		text := r.fitText(strings.TrimRight(line, " "), w-4)
		r.drawText(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		footer := r.fitText("? toggle · Esc/q close", w)
		r.drawText(0, h-1, w, footer, headerStyle)
	}
}
