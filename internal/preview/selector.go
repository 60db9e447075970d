// Package preview decides what the preview pane shows for the entry under
// the cursor: nothing, a cached directory listing, or a file summary.
package preview

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/kk-code-lab/rtab/internal/listing"
	"github.com/kk-code-lab/rtab/internal/logging"
)

var previewLog = logging.ForComponent(logging.CompPreview)

// Pane receives the preview. Every call replaces whatever the pane showed
// before.
type Pane interface {
	Clear()
	ShowListing(l *listing.Listing)
	ShowText(lines []string)
	ShowError(msg string)
}

// Selector dispatches between the empty, directory and file cases. It keeps
// no state between calls.
type Selector struct {
	Enabled bool
	Content ContentPreviewer
	Limits  Limits
}

// NewSelector returns an enabled selector.
func NewSelector(content ContentPreviewer, limits Limits) *Selector {
	return &Selector{Enabled: true, Content: content, Limits: limits}
}

// Render fills pane for entry. Directories go through cache so the preview
// shares listings (and selections) with navigation.
func (s *Selector) Render(entry *listing.Entry, cache *listing.Cache, cfg listing.SortConfig, pane Pane) {
	if !s.Enabled || entry == nil {
		pane.Clear()
		return
	}

	if entry.IsDir {
		l, err := cache.GetOrCreate(entry.FullPath, cfg)
		if err != nil {
			previewLog.Debug("directory_preview_failed", "path", entry.FullPath, "error", err)
			pane.ShowError(DescribeError(err))
			return
		}
		pane.ShowListing(l)
		return
	}

	if s.Content == nil {
		pane.Clear()
		return
	}
	lines, err := s.Content.Preview(entry.FullPath, s.Limits)
	if err != nil {
		previewLog.Debug("content_preview_failed", "path", entry.FullPath, "error", err)
		pane.ShowError(DescribeError(err))
		return
	}
	pane.ShowText(lines)
}

// DescribeError turns a preview failure into a pane message that names the
// path and the cause.
func DescribeError(err error) string {
	var contentErr *ContentError
	if errors.As(err, &contentErr) {
		return contentErr.Error()
	}

	var listErr *listing.Error
	if errors.As(err, &listErr) {
		cause := listErr.Err
		var pathErr *fs.PathError
		if errors.As(cause, &pathErr) {
			cause = pathErr.Err
		}
		return fmt.Sprintf("%s: %v", listErr.Path, cause)
	}
	return err.Error()
}
