package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeTerminalTextLeavesSafeInput(t *testing.T) {
	for _, input := range []string{"safe-file.txt", "zażółć.md", "日本語", ""} {
		if got := SanitizeTerminalText(input); got != input {
			t.Fatalf("expected %q to remain untouched, got %q", input, got)
		}
	}
}

func TestSanitizeTerminalTextReplacesControlSequences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bad\x1b[31m\npath", "bad?[31m path"},
		{"a\tb\rc", "a b c"},
		{"csi\u009b2J", "csi?2J"},
		{"del\x7f", "del?"},
		{"line\u2028sep", "line sep"},
	}
	for _, tt := range tests {
		got := SanitizeTerminalText(tt.in)
		if got != tt.want {
			t.Fatalf("SanitizeTerminalText(%q)=%q want %q", tt.in, got, tt.want)
		}
		if containsControl(got) {
			t.Fatalf("sanitized text should not contain control characters: %q", got)
		}
	}
}

func TestSanitizeTerminalTextLabelsFormattingRunes(t *testing.T) {
	input := "a\u202Eb\u200Bc\u00AD"
	got := SanitizeTerminalText(input)
	if strings.ContainsRune(got, 0x202E) || strings.ContainsRune(got, 0x200B) {
		t.Fatalf("sanitize left formatting runes in output: %q", got)
	}
	if got != "a⟪RLO⟫b⟪ZWSP⟫c⟪SHY⟫" {
		t.Fatalf("unexpected labels: %q", got)
	}
}

func TestSanitizeTerminalTextLabelsUnnamedFormatRune(t *testing.T) {
	// U+206A INHIBIT SYMMETRIC SWAPPING has no short name here.
	if got := SanitizeTerminalText("x\u206Ay"); got != "x⟪U+206A⟫y" {
		t.Fatalf("got %q", got)
	}
}

func containsControl(s string) bool {
	for _, r := range s {
		if isControl(r) {
			return true
		}
	}
	return false
}
