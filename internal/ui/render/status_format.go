package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/rtab/internal/listing"
)

const statusTimeLayout = "2006-01-02 15:04"

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	value := float64(n)
	suffixes := []string{"K", "M", "G", "T", "P"}
	idx := -1
	for value >= unit && idx < len(suffixes)-1 {
		value /= unit
		idx++
	}
	return trimTrailingZero(fmt.Sprintf("%.1f", value)) + suffixes[idx]
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimSuffix(s, "0"), ".")
}

// formatEntryStatus describes the entry under the cursor for the status line.
func formatEntryStatus(e *listing.Entry) string {
	if e == nil {
		return ""
	}
	parts := []string{e.Mode.String()}
	if !e.IsDir {
		parts = append(parts, formatSize(e.Size))
	}
	if !e.Modified.IsZero() {
		parts = append(parts, e.Modified.Format(statusTimeLayout))
	}
	return strings.Join(parts, "  ")
}

func formatSelectionStatus(l *listing.Listing) string {
	if l == nil {
		return ""
	}
	position := fmt.Sprintf("%d/%d", min(l.Cursor()+1, l.Len()), l.Len())
	if n := l.SelectionCount(); n > 0 {
		return fmt.Sprintf("%d selected  %s", n, position)
	}
	return position
}

// formatTitlePath shortens home to "~" when enabled.
func formatTitlePath(path, home string, tilde bool) string {
	if path == "" {
		return string(filepath.Separator)
	}
	if !tilde || home == "" {
		return path
	}
	home = filepath.Clean(home)
	if path == home {
		return "~"
	}
	if rel, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rel
	}
	return path
}
