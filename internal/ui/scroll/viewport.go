// Package scroll keeps a scroll offset following a position in a list whose
// cursor is owned elsewhere.
package scroll

// Viewport tracks the first visible row of a list. The list length, the
// viewport height and the followed position are passed to methods rather
// than stored, since the list owner changes them.
type Viewport struct {
	offset int
	margin int // rows kept visible above/below the followed position
}

// New creates a Viewport with the given scroll margin.
func New(margin int) Viewport {
	return Viewport{margin: max(margin, 0)}
}

// Offset returns the first visible index.
func (v Viewport) Offset() int {
	return v.offset
}

// Margin returns the scroll margin.
func (v Viewport) Margin() int {
	return v.margin
}

// Follow scrolls just enough to keep pos visible with the margin. The
// margin shrinks on short viewports so the offset never oscillates.
func (v *Viewport) Follow(pos, listLen, height int) {
	if height <= 0 || listLen == 0 {
		v.offset = 0
		return
	}
	margin := min(v.margin, (height-1)/2)

	// Scroll up: pos too close to top
	if pos < v.offset+margin {
		v.offset = pos - margin
	}

	// Scroll down: pos too close to bottom
	if pos >= v.offset+height-margin {
		v.offset = pos - height + margin + 1
	}

	v.offset = clamp(v.offset, max(listLen-height, 0))
}

// Center puts pos in the middle of the viewport.
func (v *Viewport) Center(pos, listLen, height int) {
	if height <= 0 || listLen == 0 {
		v.offset = 0
		return
	}
	v.offset = clamp(pos-height/2, max(listLen-height, 0))
}

// VisibleRange returns the range of visible indices [start, end).
func (v Viewport) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	start = min(v.offset, listLen)
	end = min(start+height, listLen)
	return start, end
}

// Reset scrolls back to the top.
func (v *Viewport) Reset() {
	v.offset = 0
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
