// Package listingtest provides an in-memory directory tree for tests that
// exercise listing caches without touching the disk.
package listingtest

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
)

// FS is a simulated filesystem keyed by absolute directory path.
type FS struct {
	dirs  map[string][]fsutil.Entry
	fails map[string]error
	reads map[string]int
}

// New returns an empty simulated filesystem.
func New() *FS {
	return &FS{
		dirs:  make(map[string][]fsutil.Entry),
		fails: make(map[string]error),
		reads: make(map[string]int),
	}
}

// AddDir creates dir with the given children. Names with a trailing slash
// are directories; they are created empty unless already present.
func (f *FS) AddDir(dir string, names ...string) {
	dir = filepath.Clean(dir)
	if _, ok := f.dirs[dir]; !ok {
		f.dirs[dir] = nil
	}
	for _, name := range names {
		f.Add(dir, name)
	}
}

// Add creates one child of dir.
func (f *FS) Add(dir, name string) {
	dir = filepath.Clean(dir)
	isDir := strings.HasSuffix(name, "/")
	name = strings.TrimSuffix(name, "/")
	entry := fsutil.Entry{
		Name:     name,
		FullPath: filepath.Join(dir, name),
		Type:     fsutil.TypeFile,
		Modified: time.Unix(int64(1_700_000_000+len(f.dirs[dir])), 0),
		Mode:     0o644,
	}
	if isDir {
		entry.Type = fsutil.TypeDirectory
		entry.IsDir = true
		entry.Mode = os.ModeDir | 0o755
		if _, ok := f.dirs[entry.FullPath]; !ok {
			f.dirs[entry.FullPath] = nil
		}
	}
	f.dirs[dir] = append(f.dirs[dir], entry)
}

// Remove deletes a child of dir.
func (f *FS) Remove(dir, name string) {
	dir = filepath.Clean(dir)
	kept := f.dirs[dir][:0]
	for _, e := range f.dirs[dir] {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	f.dirs[dir] = kept
	delete(f.dirs, filepath.Join(dir, name))
}

// Fail makes reads of dir return err until Heal is called.
func (f *FS) Fail(dir string, err error) {
	f.fails[filepath.Clean(dir)] = err
}

// Heal clears a failure installed with Fail.
func (f *FS) Heal(dir string) {
	delete(f.fails, filepath.Clean(dir))
}

// Reads returns how many times dir was listed.
func (f *FS) Reads(dir string) int {
	return f.reads[filepath.Clean(dir)]
}

// ReadDir satisfies listing.Reader.
func (f *FS) ReadDir(dir string) ([]fsutil.Entry, error) {
	dir = filepath.Clean(dir)
	f.reads[dir]++
	if err := f.fails[dir]; err != nil {
		return nil, err
	}
	entries, ok := f.dirs[dir]
	if !ok {
		return nil, os.ErrNotExist
	}
	return append([]fsutil.Entry(nil), entries...), nil
}
