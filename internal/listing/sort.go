package listing

import (
	"sort"
	"strings"
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
)

// SortMethod selects the primary sort key.
type SortMethod int

const (
	SortNatural SortMethod = iota
	SortMtime
)

// ParseSortMethod maps a config value to a SortMethod. Unknown values fall
// back to natural ordering.
func ParseSortMethod(s string) SortMethod {
	if strings.EqualFold(strings.TrimSpace(s), "mtime") {
		return SortMtime
	}
	return SortNatural
}

func (m SortMethod) String() string {
	if m == SortMtime {
		return "mtime"
	}
	return "natural"
}

// SortConfig is the sort/filter configuration a Listing is built with.
// It is comparable; two listings built with equal configs order entries
// identically.
type SortConfig struct {
	Method           SortMethod
	ShowHidden       bool
	DirectoriesFirst bool
	CaseSensitive    bool
	Reverse          bool
}

// Less orders a before b. Reverse flips the key comparison but never moves
// files above directories when DirectoriesFirst is set.
func (c SortConfig) Less(a, b fsutil.Entry) bool {
	if c.DirectoriesFirst && a.IsDir != b.IsDir {
		return a.IsDir
	}
	r := c.compare(a, b)
	if c.Reverse {
		r = -r
	}
	return r < 0
}

func (c SortConfig) compare(a, b fsutil.Entry) int {
	if c.Method == SortMtime && !a.Modified.Equal(b.Modified) {
		if a.Modified.After(b.Modified) {
			return -1
		}
		return 1
	}

	if !c.CaseSensitive {
		if r := naturalCompare(strings.ToLower(a.Name), strings.ToLower(b.Name)); r != 0 {
			return r
		}
	}
	if r := naturalCompare(a.Name, b.Name); r != 0 {
		return r
	}
	return strings.Compare(a.Name, b.Name)
}

func (c SortConfig) sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return c.Less(entries[i].Entry, entries[j].Entry)
	})
}

// naturalCompare compares strings treating runs of ASCII digits as numbers,
// so "file2" sorts before "file10".
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			da, restA := digitRun(a)
			db, restB := digitRun(b)
			if r := compareDigits(da, db); r != 0 {
				return r
			}
			a, b = restA, restB
			continue
		}

		ra, sizeA := utf8.DecodeRuneInString(a)
		rb, sizeB := utf8.DecodeRuneInString(b)
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
		a, b = a[sizeA:], b[sizeB:]
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func compareDigits(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if r := strings.Compare(ta, tb); r != 0 {
		return r
	}
	// Equal value: fewer leading zeros first.
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func digitRun(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
