package listing

import (
	"fmt"
	"path/filepath"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
	"github.com/kk-code-lab/rtab/internal/logging"
)

var cacheLog = logging.ForComponent(logging.CompCache)

// Reader lists the raw children of a directory.
type Reader func(path string) ([]fsutil.Entry, error)

// Error reports a directory that could not be listed.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Cache maps canonical directory paths to listings for one tab. It is
// unbounded and only forgets a listing when told to; directory contents are
// not watched. A Cache is not safe for concurrent use.
type Cache struct {
	read     Reader
	listings map[string]*Listing
}

// Option configures a Cache.
type Option func(*Cache)

// WithReader replaces the filesystem reader, e.g. with a simulated one.
func WithReader(r Reader) Option {
	return func(c *Cache) {
		if r != nil {
			c.read = r
		}
	}
}

// NewCache creates an empty cache reading through fs.ReadDir.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		read:     fsutil.ReadDir,
		listings: make(map[string]*Listing),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Canonical returns the cache key for path: the absolute path with symlinks
// resolved, so every route to a directory shares one listing. When the path
// cannot be resolved (it vanished, or only exists in a simulated reader) the
// cleaned absolute path is used as is.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// GetOrCreate returns the cached listing for path when it was built with
// cfg. Otherwise it lists the directory, stores and returns the fresh
// listing. A cached listing built with a different config is discarded and
// rebuilt. On failure nothing is stored, so a later call can succeed.
func (c *Cache) GetOrCreate(path string, cfg SortConfig) (*Listing, error) {
	key := Canonical(path)
	if l, ok := c.listings[key]; ok {
		if l.config == cfg {
			return l, nil
		}
		delete(c.listings, key)
		cacheLog.Debug("config_changed", "path", key)
	}

	raw, err := c.read(key)
	if err != nil {
		cacheLog.Debug("read_failed", "path", key, "error", err)
		return nil, &Error{Path: key, Err: err}
	}

	l := newListing(key, cfg, raw)
	c.listings[key] = l
	cacheLog.Debug("listing_built", "path", key, "entries", l.Len())
	return l, nil
}

// Lookup returns the cached listing for path without touching the
// filesystem.
func (c *Cache) Lookup(path string) (*Listing, bool) {
	l, ok := c.listings[Canonical(path)]
	return l, ok
}

// Invalidate forgets the listing for path, including its cursor and
// selection. The next GetOrCreate rebuilds it.
func (c *Cache) Invalidate(path string) {
	key := Canonical(path)
	if _, ok := c.listings[key]; ok {
		delete(c.listings, key)
		cacheLog.Debug("invalidated", "path", key)
	}
}

// Len returns the number of cached listings.
func (c *Cache) Len() int { return len(c.listings) }

// Clear drops every listing.
func (c *Cache) Clear() {
	clear(c.listings)
}
