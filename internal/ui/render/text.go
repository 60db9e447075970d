package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// runeWidths memoizes runewidth lookups. The renderer runs on the event
// loop goroutine only, so no locking.
type runeWidths struct {
	ascii [128]int8 // width+1; 0 means not computed yet
	other map[rune]int
}

func (c *runeWidths) width(ru rune) int {
	if ru >= 0 && ru < 128 {
		if w := c.ascii[ru]; w != 0 {
			return int(w) - 1
		}
		w := max(runewidth.RuneWidth(ru), 0)
		c.ascii[ru] = int8(w + 1)
		return w
	}
	if w, ok := c.other[ru]; ok {
		return w
	}
	if c.other == nil {
		c.other = make(map[rune]int)
	}
	w := max(runewidth.RuneWidth(ru), 0)
	c.other[ru] = w
	return w
}

func (r *Renderer) cellWidth(ru rune) int {
	return r.widths.width(ru)
}

func (r *Renderer) textWidth(text string) int {
	total := 0
	for _, ru := range text {
		total += r.cellWidth(ru)
	}
	return total
}

// fitText shortens text to maxWidth cells, ending it with an ellipsis when
// anything was cut.
func (r *Renderer) fitText(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.textWidth(text) <= maxWidth {
		return text
	}
	budget := maxWidth - r.textWidth(ellipsis)
	if budget <= 0 {
		return ellipsis
	}

	var b strings.Builder
	for _, ru := range text {
		w := r.cellWidth(ru)
		if w > budget {
			break
		}
		b.WriteRune(ru)
		budget -= w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// drawText writes text at (x, y) without crossing x+maxWidth and returns the
// next free column. Zero-width runes ride on the preceding cell.
func (r *Renderer) drawText(x, y, maxWidth int, text string, style tcell.Style) int {
	limit := x + maxWidth
	runes := []rune(text)
	for i := 0; i < len(runes); {
		main := runes[i]
		i++
		start := i
		for i < len(runes) && r.cellWidth(runes[i]) == 0 {
			i++
		}
		w := r.cellWidth(main)
		if x+w > limit || x >= limit {
			break
		}
		var comb []rune
		if i > start {
			comb = runes[start:i]
		}
		r.screen.SetContent(x, y, main, comb, style)
		x += w
	}
	return x
}

// fillRow paints cells [startX, endX) on row y.
func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
