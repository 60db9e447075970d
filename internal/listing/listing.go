package listing

import (
	fsutil "github.com/kk-code-lab/rtab/internal/fs"
)

// Entry is a directory child inside a Listing, carrying its selection mark.
type Entry struct {
	fsutil.Entry
	Selected bool
}

// Listing is the materialized, sorted contents of one directory at one
// point in time, together with the cursor and selection the user built on
// top of it. Listings are owned by a Cache; callers keep the pointer only
// as long as they need it for the current operation.
type Listing struct {
	path    string
	config  SortConfig
	entries []Entry
	cursor  int
	offset  int
}

func newListing(path string, cfg SortConfig, raw []fsutil.Entry) *Listing {
	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		if !cfg.ShowHidden && e.IsHidden() {
			continue
		}
		entries = append(entries, Entry{Entry: e})
	}
	cfg.sortEntries(entries)
	return &Listing{path: path, config: cfg, entries: entries}
}

// Path returns the absolute directory path.
func (l *Listing) Path() string { return l.path }

// Config returns the sort configuration the listing was built with.
func (l *Listing) Config() SortConfig { return l.config }

// Len returns the number of visible entries.
func (l *Listing) Len() int { return len(l.entries) }

// Entries returns the entries in display order. The slice is shared with
// the listing and must not be reordered.
func (l *Listing) Entries() []Entry { return l.entries }

// Entry returns the entry at idx or nil when out of range.
func (l *Listing) Entry(idx int) *Entry {
	if idx < 0 || idx >= len(l.entries) {
		return nil
	}
	return &l.entries[idx]
}

// Cursor returns the index of the current entry.
func (l *Listing) Cursor() int { return l.cursor }

// CurrentEntry returns the entry under the cursor, or nil for an empty
// directory.
func (l *Listing) CurrentEntry() *Entry {
	return l.Entry(l.cursor)
}

// SetCursor moves the cursor to idx, clamped to the listing bounds.
func (l *Listing) SetCursor(idx int) {
	if len(l.entries) == 0 {
		l.cursor = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(l.entries) {
		idx = len(l.entries) - 1
	}
	l.cursor = idx
}

// MoveCursor shifts the cursor by delta.
func (l *Listing) MoveCursor(delta int) {
	l.SetCursor(l.cursor + delta)
}

// IndexOf returns the display index of the entry named name, or -1.
func (l *Listing) IndexOf(name string) int {
	for i := range l.entries {
		if l.entries[i].Name == name {
			return i
		}
	}
	return -1
}

// ToggleSelected flips the selection mark of the entry at idx and reports
// the new state.
func (l *Listing) ToggleSelected(idx int) bool {
	e := l.Entry(idx)
	if e == nil {
		return false
	}
	e.Selected = !e.Selected
	return e.Selected
}

// SetSelected marks or unmarks the entry at idx.
func (l *Listing) SetSelected(idx int, selected bool) {
	if e := l.Entry(idx); e != nil {
		e.Selected = selected
	}
}

// ClearSelection unmarks every entry.
func (l *Listing) ClearSelection() {
	for i := range l.entries {
		l.entries[i].Selected = false
	}
}

// SelectionCount returns how many entries are marked.
func (l *Listing) SelectionCount() int {
	n := 0
	for i := range l.entries {
		if l.entries[i].Selected {
			n++
		}
	}
	return n
}

// SelectedNames returns the names of marked entries in display order.
func (l *Listing) SelectedNames() []string {
	var names []string
	for i := range l.entries {
		if l.entries[i].Selected {
			names = append(names, l.entries[i].Name)
		}
	}
	return names
}

// CursorName returns the name of the entry under the cursor.
func (l *Listing) CursorName() (string, bool) {
	if e := l.CurrentEntry(); e != nil {
		return e.Name, true
	}
	return "", false
}

// Viewport returns the index of the first row to draw in a column of the
// given height, keeping margin rows between the cursor and either edge
// where the listing allows it. The offset is remembered so scrolling does
// not jump when the cursor moves inside the window.
func (l *Listing) Viewport(height, margin int) int {
	if height <= 0 || len(l.entries) <= height {
		l.offset = 0
		return 0
	}
	if margin < 0 {
		margin = 0
	}
	if margin*2 >= height {
		margin = (height - 1) / 2
	}

	if l.cursor < l.offset+margin {
		l.offset = l.cursor - margin
	}
	if l.cursor >= l.offset+height-margin {
		l.offset = l.cursor - height + margin + 1
	}

	maxOffset := len(l.entries) - height
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
	return l.offset
}
