package listing

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/kk-code-lab/rtab/internal/listing/listingtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultSort = SortConfig{DirectoriesFirst: true}

func newFakeCache(t *testing.T) (*Cache, *listingtest.FS) {
	t.Helper()
	fake := listingtest.New()
	return NewCache(WithReader(fake.ReadDir)), fake
}

func TestGetOrCreateReturnsSameInstance(t *testing.T) {
	cache, fake := newFakeCache(t)
	fake.AddDir("/a", "x", "y", "z")

	first, err := cache.GetOrCreate("/a", defaultSort)
	require.NoError(t, err)
	first.SetSelected(1, true)
	first.SetCursor(2)

	second, err := cache.GetOrCreate("/a/", defaultSort)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"y"}, second.SelectedNames())
	assert.Equal(t, 2, second.Cursor())
	assert.Equal(t, 1, fake.Reads("/a"))
}

func TestGetOrCreateSharesListingAcrossSymlink(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "a.txt"), nil, 0o644))
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	assert.Equal(t, Canonical(target), Canonical(link))

	cache := NewCache()
	viaTarget, err := cache.GetOrCreate(target, defaultSort)
	require.NoError(t, err)
	viaLink, err := cache.GetOrCreate(link, defaultSort)
	require.NoError(t, err)

	assert.Same(t, viaTarget, viaLink)
	assert.Equal(t, 1, cache.Len())
}

func TestInvalidateRebuildsWithoutSelection(t *testing.T) {
	cache, fake := newFakeCache(t)
	fake.AddDir("/a", "x", "y")

	first, err := cache.GetOrCreate("/a", defaultSort)
	require.NoError(t, err)
	first.ToggleSelected(0)
	first.SetCursor(1)

	cache.Invalidate("/a")
	_, ok := cache.Lookup("/a")
	assert.False(t, ok)

	second, err := cache.GetOrCreate("/a", defaultSort)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Empty(t, second.SelectedNames())
	assert.Equal(t, 0, second.Cursor())
	assert.Equal(t, 2, fake.Reads("/a"))
}

func TestGetOrCreateFailureLeavesNoEntry(t *testing.T) {
	cache, fake := newFakeCache(t)
	fake.AddDir("/locked", "secret")
	fake.Fail("/locked", fs.ErrPermission)

	l, err := cache.GetOrCreate("/locked", defaultSort)
	require.Error(t, err)
	assert.Nil(t, l)

	var listErr *Error
	require.True(t, errors.As(err, &listErr))
	assert.Equal(t, Canonical("/locked"), listErr.Path)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, 0, cache.Len())

	fake.Heal("/locked")
	l, err = cache.GetOrCreate("/locked", defaultSort)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestConfigChangeRebuildsListing(t *testing.T) {
	cache, fake := newFakeCache(t)
	fake.AddDir("/a", ".hidden", "visible")

	hidden, err := cache.GetOrCreate("/a", defaultSort)
	require.NoError(t, err)
	assert.Equal(t, 1, hidden.Len())

	cfg := defaultSort
	cfg.ShowHidden = true
	shown, err := cache.GetOrCreate("/a", cfg)
	require.NoError(t, err)
	assert.NotSame(t, hidden, shown)
	assert.Equal(t, 2, shown.Len())
	assert.Equal(t, cfg, shown.Config())
	assert.Equal(t, 1, cache.Len())
}

func TestClearDropsEverything(t *testing.T) {
	cache, fake := newFakeCache(t)
	fake.AddDir("/a", "b/")

	_, err := cache.GetOrCreate("/a", defaultSort)
	require.NoError(t, err)
	_, err = cache.GetOrCreate("/a/b", defaultSort)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestCacheReadsRealDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"file10.txt", "file2.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zdir"), 0o755))

	l, err := NewCache().GetOrCreate(dir, defaultSort)
	require.NoError(t, err)

	var names []string
	for _, e := range l.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"zdir", "file2.txt", "file10.txt"}, names)
}
