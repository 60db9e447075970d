package render

// layoutMetrics places the parent, current and preview columns. A column
// with zero width is not drawn.
type layoutMetrics struct {
	parentX, parentWidth   int
	currentX, currentWidth int
	previewX, previewWidth int
}

const columnGap = 1

// computeLayout splits width by ratio. The preview share is folded into the
// current column when the preview is hidden.
func computeLayout(width int, ratio [3]int, showPreview bool) layoutMetrics {
	if !showPreview {
		ratio[1] += ratio[2]
		ratio[2] = 0
	}
	total := ratio[0] + ratio[1] + ratio[2]
	if width <= 0 || total <= 0 {
		return layoutMetrics{currentWidth: max(width, 0)}
	}

	gaps := 0
	if ratio[0] > 0 {
		gaps++
	}
	if ratio[2] > 0 {
		gaps++
	}
	usable := width - gaps*columnGap
	if usable < 3 {
		return layoutMetrics{currentWidth: width}
	}

	var m layoutMetrics
	m.parentWidth = usable * ratio[0] / total
	m.previewWidth = usable * ratio[2] / total
	m.currentWidth = usable - m.parentWidth - m.previewWidth

	x := 0
	if m.parentWidth > 0 {
		m.parentX = 0
		x = m.parentWidth + columnGap
	}
	m.currentX = x
	x += m.currentWidth
	if m.previewWidth > 0 {
		m.previewX = x + columnGap
	}
	return m
}
