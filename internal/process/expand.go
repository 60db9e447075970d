package process

import (
	"os"
	"path/filepath"
)

// Selection is the read-only view of a tab's listing that expansion needs.
type Selection interface {
	// SelectedNames returns marked entry names in display order.
	SelectedNames() []string
	// CursorName returns the entry under the cursor, if any.
	CursorName() (string, bool)
}

// Expand builds the argument vector for t, program included. Each
// standalone placeholder becomes the selected names, else the cursor entry,
// else nothing. sel may be nil when the tab has no readable listing.
func Expand(t Template, sel Selection) []string {
	if len(t) == 0 {
		return nil
	}

	argv := make([]string, 0, len(t))
	argv = append(argv, t[0])
	for _, token := range t[1:] {
		if token != Placeholder {
			argv = append(argv, token)
			continue
		}
		argv = append(argv, selectionArgs(sel)...)
	}
	return argv
}

func selectionArgs(sel Selection) []string {
	if sel == nil {
		return nil
	}
	if names := sel.SelectedNames(); len(names) > 0 {
		return names
	}
	if name, ok := sel.CursorName(); ok {
		return []string{name}
	}
	return nil
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}
