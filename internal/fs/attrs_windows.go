//go:build windows

package fs

import (
	"os"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// IsHidden honours the HIDDEN attribute and falls back to the dotfile rule
// when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}

// ShouldHideFromListing drops system reparse points (the legacy
// compatibility junctions such as "Application Data"), which are never
// navigable even when hidden files are shown.
func ShouldHideFromListing(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protected = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protected == protected
}

func fileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}

	attrs, err := getAttrs(target)
	if err == nil {
		return attrs, nil
	}
	if os.IsNotExist(err) && fullPath != "" && fullPath != name {
		if alt, altErr := getAttrs(name); altErr == nil {
			return alt, nil
		}
	}
	return 0, err
}

func getAttrs(path string) (uint32, error) {
	ptr, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return syscall.GetFileAttributes(ptr)
}
