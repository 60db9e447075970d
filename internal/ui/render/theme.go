package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HiddenFg    tcell.Color
	CursorBg    tcell.Color
	CursorFg    tcell.Color
	SelectedFg  tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	TabActiveBg tcell.Color
	TabActiveFg tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ErrorFg     tcell.Color
	PreviewFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		CursorBg:    tcell.Color33,
		CursorFg:    tcell.ColorWhite,
		SelectedFg:  tcell.ColorYellow,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		TabActiveBg: tcell.Color33,
		TabActiveFg: tcell.ColorWhite,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		PreviewFg:   tcell.ColorDefault,
	}
}
