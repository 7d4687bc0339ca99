// Package lyrics provides LRC parsing, generation, sync editing and
// active-line resolution.
package lyrics

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidTimestamp is returned for negative or malformed timestamps.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrIndexOutOfRange is returned when an edit references a missing line.
	ErrIndexOutOfRange = errors.New("line index out of range")
)

// Line is a single lyric line. Lines without a timestamp have Timed set to
// false and are waiting to be synced.
type Line struct {
	ID    string
	Time  time.Duration
	Timed bool
	Text  string
}

// NewLine creates an untimed line with a fresh ID.
func NewLine(text string) Line {
	return Line{ID: uuid.NewString(), Text: text}
}

// NewTimedLine creates a line synced at t.
func NewTimedLine(t time.Duration, text string) Line {
	return Line{ID: uuid.NewString(), Time: t, Timed: true, Text: text}
}

// IsBlank reports whether the line has no lyric content.
func (l Line) IsBlank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// Lyrics contains parsed lyrics with optional metadata.
type Lyrics struct {
	Lines  []Line
	Title  string
	Artist string
	Album  string
	By     string
}

// LineAt returns the index of the lyric line at the given playback position.
// Returns -1 if no line is active yet.
func (l *Lyrics) LineAt(pos time.Duration) int {
	if l == nil {
		return -1
	}
	return LineAt(l.Lines, pos)
}

// IsSynced returns true if at least one line carries a timestamp.
func (l *Lyrics) IsSynced() bool {
	if l == nil {
		return false
	}
	for _, line := range l.Lines {
		if line.Timed {
			return true
		}
	}
	return false
}

func cloneLines(lines []Line) []Line {
	if lines == nil {
		return []Line{}
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
