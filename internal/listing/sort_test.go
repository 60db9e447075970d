package listing

import (
	"testing"
	"time"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
	"github.com/stretchr/testify/assert"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func entry(name string, isDir bool, mtime int64) fsutil.Entry {
	return fsutil.Entry{Name: name, FullPath: "/x/" + name, IsDir: isDir, Modified: time.Unix(mtime, 0)}
}

func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"file2", "file10", -1},
		{"file10", "file2", 1},
		{"a", "a", 0},
		{"a", "ab", -1},
		{"img007", "img7", 1},
		{"x9y", "x10a", -1},
	}
	for _, tt := range tests {
		if got := naturalCompare(tt.a, tt.b); got != tt.want {
			t.Fatalf("naturalCompare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSortNaturalDirectoriesFirstCaseInsensitive(t *testing.T) {
	raw := []fsutil.Entry{
		entry("beta", false, 1),
		entry("Alpha", false, 2),
		entry("docs", true, 3),
		entry("Music", true, 4),
	}
	l := newListing("/x", SortConfig{DirectoriesFirst: true}, raw)
	assert.Equal(t, []string{"docs", "Music", "Alpha", "beta"}, names(l.Entries()))
}

func TestSortCaseSensitivePutsUppercaseFirst(t *testing.T) {
	raw := []fsutil.Entry{entry("beta", false, 1), entry("Alpha", false, 1), entry("alpha", false, 1)}
	l := newListing("/x", SortConfig{CaseSensitive: true}, raw)
	assert.Equal(t, []string{"Alpha", "alpha", "beta"}, names(l.Entries()))
}

func TestSortMtimeNewestFirst(t *testing.T) {
	raw := []fsutil.Entry{entry("old", false, 10), entry("new", false, 30), entry("mid", false, 20)}
	l := newListing("/x", SortConfig{Method: SortMtime}, raw)
	assert.Equal(t, []string{"new", "mid", "old"}, names(l.Entries()))
}

func TestSortReverseKeepsDirectoriesFirst(t *testing.T) {
	raw := []fsutil.Entry{entry("a", false, 1), entry("b", false, 1), entry("d", true, 1)}
	l := newListing("/x", SortConfig{DirectoriesFirst: true, Reverse: true}, raw)
	assert.Equal(t, []string{"d", "b", "a"}, names(l.Entries()))
}

func TestParseSortMethod(t *testing.T) {
	assert.Equal(t, SortMtime, ParseSortMethod("mtime"))
	assert.Equal(t, SortNatural, ParseSortMethod("natural"))
	assert.Equal(t, SortNatural, ParseSortMethod("size"))
}
