package fs

import (
	"os"
	"time"
)

// EntryType classifies a directory child.
type EntryType int

const (
	TypeFile EntryType = iota
	TypeDirectory
	TypeSymlink
	TypeOther
)

func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry represents a single file or directory on disk.
//
// For symlinks Type is TypeSymlink and IsDir reports whether the target
// resolves to a directory.
type Entry struct {
	Name      string
	FullPath  string
	Type      EntryType
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// EntryFromInfo builds an Entry from lstat information, following symlinks
// only to decide IsDir.
func EntryFromInfo(name, fullPath string, info os.FileInfo) Entry {
	mode := info.Mode()
	entry := Entry{
		Name:     name,
		FullPath: fullPath,
		Size:     info.Size(),
		Modified: info.ModTime(),
		Mode:     mode,
	}

	switch {
	case mode&os.ModeSymlink != 0:
		entry.Type = TypeSymlink
		entry.IsSymlink = true
		if target, err := os.Stat(fullPath); err == nil {
			entry.IsDir = target.IsDir()
		}
	case mode.IsDir():
		entry.Type = TypeDirectory
		entry.IsDir = true
	case mode.IsRegular():
		entry.Type = TypeFile
	default:
		entry.Type = TypeOther
	}
	return entry
}
