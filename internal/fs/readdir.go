package fs

import (
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// ReadDir lists the direct children of dirPath in directory order.
// Names are NFC-normalized so macOS decomposed names compare and render
// like everywhere else. Entries that vanish between readdir and lstat are
// skipped, as are entries the platform never shows (see ShouldHideFromListing).
func ReadDir(dirPath string) ([]Entry, error) {
	dirents, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			continue
		}

		rawName := d.Name()
		fullPath := filepath.Join(dirPath, rawName)
		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}

		entries = append(entries, EntryFromInfo(norm.NFC.String(rawName), fullPath, info))
	}
	return entries, nil
}
