package render

import "github.com/kk-code-lab/rtab/internal/listing"

// PaneKind says what the preview pane currently holds.
type PaneKind int

const (
	PaneEmpty PaneKind = iota
	PaneListing
	PaneText
	PaneError
)

// PreviewPane is the preview column's model. Each Show call replaces the
// previous content entirely.
type PreviewPane struct {
	kind    PaneKind
	listing *listing.Listing
	lines   []string
	message string
}

// NewPreviewPane returns an empty pane.
func NewPreviewPane() *PreviewPane {
	return &PreviewPane{}
}

func (p *PreviewPane) Clear() {
	*p = PreviewPane{}
}

func (p *PreviewPane) ShowListing(l *listing.Listing) {
	*p = PreviewPane{kind: PaneListing, listing: l}
}

func (p *PreviewPane) ShowText(lines []string) {
	*p = PreviewPane{kind: PaneText, lines: lines}
}

func (p *PreviewPane) ShowError(msg string) {
	*p = PreviewPane{kind: PaneError, message: msg}
}

func (p *PreviewPane) Kind() PaneKind { return p.kind }

// Listing returns the previewed directory when Kind is PaneListing.
func (p *PreviewPane) Listing() *listing.Listing { return p.listing }

func (p *PreviewPane) Lines() []string { return p.lines }

func (p *PreviewPane) Message() string { return p.message }
