package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirWatcherPostsDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	posted := make(chan string, 8)

	w, err := newDirWatcher(func(d string) { posted <- d })
	require.NoError(t, err)
	t.Cleanup(w.Close)
	w.Watch(dir)

	for i := 0; i < 3; i++ {
		name := filepath.Join(dir, "f"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}

	select {
	case got := <-posted:
		assert.Equal(t, dir, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no change posted")
	}
}

func TestDirWatcherCloseStopsPosting(t *testing.T) {
	dir := t.TempDir()
	posted := make(chan string, 8)

	w, err := newDirWatcher(func(d string) { posted <- d })
	require.NoError(t, err)
	w.Watch(dir)
	w.Close()
	w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "late"), []byte("x"), 0o644))
	select {
	case got := <-posted:
		t.Fatalf("unexpected post after close: %s", got)
	case <-time.After(2 * watchDebounce):
	}
}
