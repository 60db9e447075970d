// Package tab holds per-tab navigation state. Each tab owns its listing
// cache, so selections made in one tab never leak into another.
package tab

import (
	"errors"
	"path/filepath"

	"github.com/kk-code-lab/rtab/internal/listing"
)

// ErrNotDirectory is returned by Enter when the cursor is not on a directory.
var ErrNotDirectory = errors.New("not a directory")

// Tab is one browsing context.
type Tab struct {
	id    int
	cwd   string
	cache *listing.Cache
	sort  listing.SortConfig
}

// New opens a tab at dir. The directory is not read until Current is called.
func New(id int, dir string, sortCfg listing.SortConfig, opts ...listing.Option) *Tab {
	return &Tab{
		id:    id,
		cwd:   listing.Canonical(dir),
		cache: listing.NewCache(opts...),
		sort:  sortCfg,
	}
}

func (t *Tab) ID() int { return t.id }

// Cwd returns the tab's current directory.
func (t *Tab) Cwd() string { return t.cwd }

func (t *Tab) Cache() *listing.Cache { return t.cache }

func (t *Tab) SortConfig() listing.SortConfig { return t.sort }

// SetSortConfig changes the sort used from now on. Cached listings built
// with the old config are rebuilt the next time they are requested.
func (t *Tab) SetSortConfig(cfg listing.SortConfig) { t.sort = cfg }

// Current returns the listing of the current directory.
func (t *Tab) Current() (*listing.Listing, error) {
	return t.cache.GetOrCreate(t.cwd, t.sort)
}

// CurrentEntry returns the entry under the cursor, or nil.
func (t *Tab) CurrentEntry() *listing.Entry {
	l, err := t.Current()
	if err != nil {
		return nil
	}
	return l.CurrentEntry()
}

// ParentListing returns the listing of the parent directory with its cursor
// on the current directory. It returns nil at the filesystem root.
func (t *Tab) ParentListing() (*listing.Listing, error) {
	parent := filepath.Dir(t.cwd)
	if parent == t.cwd {
		return nil, nil
	}
	l, err := t.cache.GetOrCreate(parent, t.sort)
	if err != nil {
		return nil, err
	}
	if idx := l.IndexOf(filepath.Base(t.cwd)); idx >= 0 {
		l.SetCursor(idx)
	}
	return l, nil
}

// ChangeDirectory moves the tab to dir. The tab stays where it was when dir
// cannot be listed.
func (t *Tab) ChangeDirectory(dir string) error {
	dir = listing.Canonical(dir)
	if _, err := t.cache.GetOrCreate(dir, t.sort); err != nil {
		return err
	}
	t.cwd = dir
	return nil
}

// Enter descends into the directory under the cursor.
func (t *Tab) Enter() error {
	entry := t.CurrentEntry()
	if entry == nil || !entry.IsDir {
		return ErrNotDirectory
	}
	return t.ChangeDirectory(entry.FullPath)
}

// Parent moves to the parent directory and puts the cursor on the
// directory just left. At the root it does nothing.
func (t *Tab) Parent() error {
	parent := filepath.Dir(t.cwd)
	if parent == t.cwd {
		return nil
	}
	child := filepath.Base(t.cwd)
	if err := t.ChangeDirectory(parent); err != nil {
		return err
	}
	if l, err := t.Current(); err == nil {
		if idx := l.IndexOf(child); idx >= 0 {
			l.SetCursor(idx)
		}
	}
	return nil
}

// ToggleHidden flips ShowHidden and returns the new value. Listings are
// rebuilt lazily under the new config; the cursor follows its entry name.
func (t *Tab) ToggleHidden() bool {
	var cursorName string
	if l, ok := t.cache.Lookup(t.cwd); ok {
		cursorName, _ = l.CursorName()
	}

	t.sort.ShowHidden = !t.sort.ShowHidden

	if l, err := t.Current(); err == nil && cursorName != "" {
		if idx := l.IndexOf(cursorName); idx >= 0 {
			l.SetCursor(idx)
		}
	}
	return t.sort.ShowHidden
}

// Close releases every cached listing.
func (t *Tab) Close() {
	t.cache.Clear()
}
