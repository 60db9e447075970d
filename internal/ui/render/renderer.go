package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rtab/internal/listing"
	textutil "github.com/kk-code-lab/rtab/internal/textutil"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	widths runeWidths
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws one frame: header, the three columns, status and footer.
func (r *Renderer) Render(view *View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if view == nil || w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	if view.ShowHelp {
		r.drawHelpOverlay(view, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(view, w)

	bodyTop, bodyHeight := 1, h-3
	if bodyHeight > 0 {
		layout := computeLayout(w, view.ColumnRatio, view.ShowPreview)
		if layout.parentWidth > 0 && view.Parent != nil {
			r.drawColumn(view.Parent, layout.parentX, bodyTop, layout.parentWidth, bodyHeight, view.ScrollOffset, false)
		}
		if view.Current != nil {
			r.drawColumn(view.Current, layout.currentX, bodyTop, layout.currentWidth, bodyHeight, view.ScrollOffset, true)
		} else if view.CurrentErr != "" {
			r.drawMessage(layout.currentX, bodyTop, layout.currentWidth, view.CurrentErr, true)
		}
		if layout.previewWidth > 0 {
			r.drawPreview(view, layout.previewX, bodyTop, layout.previewWidth, bodyHeight)
		}
	}

	if h >= 2 {
		r.drawStatusLine(view, w, h-2)
	}
	r.drawFooter(view, w, h-1)
	r.screen.Show()
}

// drawHeader renders the tab strip followed by the current path.
func (r *Renderer) drawHeader(view *View, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	activeStyle := tcell.StyleDefault.Background(r.theme.TabActiveBg).Foreground(r.theme.TabActiveFg).Bold(true)

	x := 0
	if len(view.TabLabels) > 1 {
		for i, label := range view.TabLabels {
			style := headerStyle
			if i == view.ActiveTab {
				style = activeStyle
			}
			x = r.drawText(x, 0, w-x, " "+textutil.SanitizeTerminalText(label)+" ", style)
		}
		if x < w {
			r.screen.SetContent(x, 0, ' ', nil, headerStyle)
			x++
		}
	}

	if x < w {
		title := formatTitlePath(view.Cwd, view.Home, view.TildeInTitlebar)
		title = textutil.SanitizeTerminalText(title)
		title = r.fitText(title, w-x)
		x = r.drawText(x, 0, w-x, title, headerStyle.Bold(true))
	}
	r.fillRow(x, w, 0, headerStyle)
}

func (r *Renderer) drawColumn(l *listing.Listing, x, y, width, height, margin int, active bool) {
	if l.Len() == 0 {
		r.drawMessage(x, y, width, "empty", false)
		return
	}

	offset := l.Viewport(height, margin)
	entries := l.Entries()
	for row := 0; row < height && offset+row < len(entries); row++ {
		idx := offset + row
		e := &entries[idx]
		style := r.entryStyle(e)
		if idx == l.Cursor() {
			style = style.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
			if !active {
				style = style.Bold(false).Dim(true)
			}
		}

		name := textutil.SanitizeTerminalText(e.Name)
		prefix := " "
		if e.Selected {
			prefix = "*"
		}
		if e.IsDir {
			name += "/"
		}
		text := prefix + r.fitText(name, width-1)
		end := r.drawText(x, y+row, width, text, style)
		r.fillRow(end, x+width, y+row, style)
	}
}

func (r *Renderer) entryStyle(e *listing.Entry) tcell.Style {
	style := tcell.StyleDefault.Foreground(r.theme.FileFg)
	switch {
	case e.Selected:
		style = style.Foreground(r.theme.SelectedFg).Bold(true)
	case e.IsSymlink:
		style = style.Foreground(r.theme.SymlinkFg)
	case e.IsDir:
		style = style.Foreground(r.theme.DirectoryFg).Bold(true)
	case e.IsHidden():
		style = style.Foreground(r.theme.HiddenFg)
	}
	return style
}

func (r *Renderer) drawPreview(view *View, x, y, width, height int) {
	pane := view.Preview
	if pane == nil {
		return
	}
	switch pane.Kind() {
	case PaneListing:
		r.drawColumn(pane.Listing(), x, y, width, height, view.ScrollOffset, false)
	case PaneText:
		style := tcell.StyleDefault.Foreground(r.theme.PreviewFg)
		for row, line := range pane.Lines() {
			if row >= height {
				break
			}
			r.drawText(x, y+row, width, line, style)
		}
	case PaneError:
		r.drawMessage(x, y, width, pane.Message(), true)
	}
}

func (r *Renderer) drawMessage(x, y, width int, msg string, isErr bool) {
	style := tcell.StyleDefault.Foreground(r.theme.HiddenFg)
	if isErr {
		style = tcell.StyleDefault.Foreground(r.theme.ErrorFg).Bold(true)
	}
	msg = r.fitText(textutil.SanitizeTerminalText(msg), width)
	r.drawText(x, y, width, msg, style)
}

// drawStatusLine shows the queued message, or details of the cursor entry,
// with the selection summary right-aligned.
func (r *Renderer) drawStatusLine(view *View, w, y int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	right := formatSelectionStatus(view.Current)
	rightWidth := r.textWidth(right)
	leftWidth := w - rightWidth - 1
	if leftWidth < 0 {
		leftWidth = 0
	}

	left := view.Message
	leftStyle := style
	if left != "" && view.MessageError {
		leftStyle = style.Foreground(r.theme.ErrorFg).Bold(true)
	}
	if left == "" && view.Current != nil {
		left = formatEntryStatus(view.Current.CurrentEntry())
	}
	left = r.fitText(textutil.SanitizeTerminalText(left), leftWidth)

	end := r.drawText(0, y, leftWidth, left, leftStyle)
	r.fillRow(end, w, y, style)
	if right != "" && rightWidth < w {
		r.drawText(w-rightWidth, y, rightWidth, right, style)
	}
}

func (r *Renderer) drawFooter(view *View, w, y int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Dim(true)
	text := strings.TrimRight(buildFooterHelpText(view.Hints), " ")
	text = r.fitText(text, w)
	end := r.drawText(0, y, w, text, style)
	r.fillRow(end, w, y, style)
}
