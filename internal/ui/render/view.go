package render

import "github.com/kk-code-lab/rtab/internal/listing"

// KeyHint is one footer/help entry.
type KeyHint struct {
	Keys string
	Desc string
}

// View is everything one frame needs. The renderer reads it and never
// mutates navigation state, apart from the viewport offsets kept inside
// each listing.
type View struct {
	Cwd  string
	Home string
	// TildeInTitlebar abbreviates Home to "~" in the header.
	TildeInTitlebar bool

	TabLabels []string
	ActiveTab int

	Parent     *listing.Listing
	Current    *listing.Listing
	CurrentErr string
	Preview    *PreviewPane

	ShowPreview  bool
	ColumnRatio  [3]int
	ScrollOffset int

	Message      string
	MessageError bool

	Hints    []KeyHint
	ShowHelp bool
}
