package lyrics

// History is a linear undo/redo stack of timeline snapshots. The snapshot
// under the cursor always equals the live timeline.
type History struct {
	snapshots [][]Line
	cursor    int
	limit     int
}

// NewHistory creates a history holding at most limit snapshots.
// A limit of 0 or less keeps every snapshot.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 0)}
}

// Reset discards all history and seeds it with lines.
func (h *History) Reset(lines []Line) {
	h.snapshots = [][]Line{cloneLines(lines)}
	h.cursor = 0
}

// Push records lines as the newest state. Anything that could have been
// redone is discarded.
func (h *History) Push(lines []Line) {
	if len(h.snapshots) == 0 {
		h.Reset(lines)
		return
	}
	h.snapshots = append(h.snapshots[:h.cursor+1], cloneLines(lines))
	h.cursor++

	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		clear(h.snapshots[:drop])
		h.snapshots = h.snapshots[drop:]
		h.cursor -= drop
	}
}

// Undo steps back one snapshot. Returns false when already at the oldest.
func (h *History) Undo() ([]Line, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return cloneLines(h.snapshots[h.cursor]), true
}

// Redo steps forward one snapshot. Returns false when already at the newest.
func (h *History) Redo() ([]Line, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return cloneLines(h.snapshots[h.cursor]), true
}

// CanUndo reports whether Undo would change state.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether Redo would change state.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Current returns a copy of the snapshot under the cursor.
func (h *History) Current() []Line {
	if len(h.snapshots) == 0 {
		return []Line{}
	}
	return cloneLines(h.snapshots[h.cursor])
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int {
	return h.cursor
}
