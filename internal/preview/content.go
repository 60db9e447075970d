package preview

import (
	"fmt"
	"os"
	"strings"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
	"github.com/kk-code-lab/rtab/internal/textutil"
)

// DefaultMaxBytes mirrors the max_preview_size default.
const DefaultMaxBytes int64 = 2 * 1024 * 1024

// Limits bounds a file preview.
type Limits struct {
	// MaxLines caps the returned lines; zero means no cap.
	MaxLines int
	// MaxBytes rejects files larger than this; zero means no cap.
	MaxBytes int64
}

// ContentPreviewer summarises a non-directory entry as display lines.
type ContentPreviewer interface {
	Preview(path string, limits Limits) ([]string, error)
}

// FailKind classifies a content preview failure.
type FailKind int

const (
	FailRead FailKind = iota
	FailBinary
	FailTooLarge
)

func (k FailKind) String() string {
	switch k {
	case FailBinary:
		return "binary"
	case FailTooLarge:
		return "too large"
	default:
		return "read"
	}
}

// ContentError reports why a file could not be previewed.
type ContentError struct {
	Kind FailKind
	Path string
	Err  error
}

func (e *ContentError) Error() string {
	switch e.Kind {
	case FailBinary:
		return fmt.Sprintf("%s: binary file", e.Path)
	case FailTooLarge:
		return fmt.Sprintf("%s: file too large to preview", e.Path)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: cannot preview", e.Path)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ContentError) Unwrap() error { return e.Err }

// TextPreviewer reads the head of a text file.
type TextPreviewer struct {
	TabWidth int
}

// Preview returns up to limits.MaxLines lines of path.
func (p TextPreviewer) Preview(path string, limits Limits) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ContentError{Kind: FailRead, Path: path, Err: err}
	}
	if limits.MaxBytes > 0 && info.Size() > limits.MaxBytes {
		return nil, &ContentError{Kind: FailTooLarge, Path: path}
	}

	readLimit := info.Size()
	if limits.MaxBytes > 0 && readLimit > limits.MaxBytes {
		readLimit = limits.MaxBytes
	}
	if readLimit == 0 {
		return []string{}, nil
	}
	content, err := fsutil.ReadFileHead(path, readLimit)
	if err != nil {
		return nil, &ContentError{Kind: FailRead, Path: path, Err: err}
	}
	if !fsutil.IsTextFile(path, content) {
		return nil, &ContentError{Kind: FailBinary, Path: path}
	}

	return splitDisplayLines(fsutil.NormalizeTextContent(content), p.tabWidth(), limits.MaxLines), nil
}

func (p TextPreviewer) tabWidth() int {
	if p.TabWidth > 0 {
		return p.TabWidth
	}
	return textutil.DefaultTabWidth
}

// splitDisplayLines turns raw text into sanitized, tab-expanded lines.
func splitDisplayLines(text string, tabWidth, maxLines int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}

	raw := strings.Split(text, "\n")
	if maxLines > 0 && len(raw) > maxLines {
		raw = raw[:maxLines]
	}
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		lines[i] = textutil.SanitizeTerminalText(textutil.ExpandTabs(line, tabWidth))
	}
	return lines
}
