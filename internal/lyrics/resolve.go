package lyrics

import (
	"sort"
	"time"
)

// LineAt returns the index of the line active at pos: the last line whose
// time is the greatest one not after pos. Returns -1 before the first timed
// line or when nothing is timed.
//
// lines must be in parser order (timed ascending, untimed last).
func LineAt(lines []Line, pos time.Duration) int {
	// First index that is untimed or starts after pos.
	i := sort.Search(len(lines), func(i int) bool {
		return !lines[i].Timed || lines[i].Time > pos
	})
	return i - 1
}

// scanLineAt gives the same answer as LineAt for lines in any order.
func scanLineAt(lines []Line, pos time.Duration) int {
	idx := -1
	for i, line := range lines {
		if !line.Timed || line.Time > pos {
			continue
		}
		if idx < 0 || line.Time >= lines[idx].Time {
			idx = i
		}
	}
	return idx
}

// inParserOrder reports whether LineAt can be used on lines.
func inParserOrder(lines []Line) bool {
	seenUntimed := false
	for i, line := range lines {
		if !line.Timed {
			seenUntimed = true
			continue
		}
		if seenUntimed {
			return false
		}
		if i > 0 && line.Time < lines[i-1].Time {
			return false
		}
	}
	return true
}
