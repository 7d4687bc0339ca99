package lyrics

import (
	"fmt"
	"slices"
	"time"
)

// Editor is a sync editing session over one track's timeline. Every
// mutation is recorded in its History. An Editor is owned by a single
// caller; it is not safe for concurrent use.
type Editor struct {
	lines       []Line
	history     *History
	current     int
	autoAdvance bool
	ordered     bool
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithAutoAdvance sets whether syncing moves the cursor to the next
// non-blank line.
func WithAutoAdvance(enabled bool) EditorOption {
	return func(e *Editor) { e.autoAdvance = enabled }
}

// WithHistoryLimit caps the number of undo snapshots kept.
func WithHistoryLimit(limit int) EditorOption {
	return func(e *Editor) { e.history = NewHistory(limit) }
}

// NewEditor starts a session seeded with lines.
func NewEditor(lines []Line, opts ...EditorOption) *Editor {
	e := &Editor{
		history:     NewHistory(0),
		autoAdvance: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.BulkReplace(lines)
	return e
}

// Lines returns a copy of the current timeline.
func (e *Editor) Lines() []Line {
	return cloneLines(e.lines)
}

// Line returns the line at index.
func (e *Editor) Line(index int) (Line, error) {
	if err := e.checkIndex(index); err != nil {
		return Line{}, err
	}
	return e.lines[index], nil
}

// Len returns the number of lines.
func (e *Editor) Len() int {
	return len(e.lines)
}

// Current returns the edit cursor.
func (e *Editor) Current() int {
	return e.current
}

// SetCurrent moves the edit cursor.
func (e *Editor) SetCurrent(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	e.current = index
	return nil
}

// AutoAdvance reports whether auto-advance is on.
func (e *Editor) AutoAdvance() bool {
	return e.autoAdvance
}

// SetAutoAdvance turns auto-advance on or off.
func (e *Editor) SetAutoAdvance(enabled bool) {
	e.autoAdvance = enabled
}

// History exposes the undo history for inspection.
func (e *Editor) History() *History {
	return e.history
}

// SyncLine stamps the line at index with now.
func (e *Editor) SyncLine(index int, now time.Duration) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if now < 0 {
		return fmt.Errorf("sync line %d: %w: %v", index, ErrInvalidTimestamp, now)
	}

	next := cloneLines(e.lines)
	next[index].Time = now
	next[index].Timed = true
	e.commit(next)

	if e.autoAdvance {
		for i := index + 1; i < len(e.lines); i++ {
			if !e.lines[i].IsBlank() {
				e.current = i
				break
			}
		}
	}
	return nil
}

// SyncCurrent stamps the line under the cursor with now.
func (e *Editor) SyncCurrent(now time.Duration) error {
	return e.SyncLine(e.current, now)
}

// BackLine moves the cursor up one line without touching the timeline.
func (e *Editor) BackLine() {
	e.current = max(e.current-1, 0)
}

// AddLine inserts a blank untimed line after the given index and moves
// the cursor to it. An index of -1 prepends. Returns the new line's index.
func (e *Editor) AddLine(after int) (int, error) {
	if after < -1 || after >= len(e.lines) {
		return 0, fmt.Errorf("add line after %d: %w", after, ErrIndexOutOfRange)
	}
	at := after + 1
	e.commit(slices.Insert(cloneLines(e.lines), at, NewLine("")))
	e.current = at
	return at, nil
}

// RemoveLine deletes the line at index.
func (e *Editor) RemoveLine(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	e.commit(slices.Delete(cloneLines(e.lines), index, index+1))

	if e.current >= index && e.current > 0 {
		e.current--
	}
	if len(e.lines) == 0 {
		e.current = 0
	}
	return nil
}

// EditText replaces the text of the line at index.
func (e *Editor) EditText(index int, text string) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	next := cloneLines(e.lines)
	next[index].Text = text
	e.commit(next)
	return nil
}

// BulkReplace swaps in a whole new timeline, for example after a paste or
// a freshly loaded file. History restarts from it.
func (e *Editor) BulkReplace(lines []Line) {
	e.lines = cloneLines(lines)
	e.history.Reset(e.lines)
	e.current = 0
	e.ordered = inParserOrder(e.lines)
}

// Undo reverts the last edit. Returns false if there is nothing to undo.
func (e *Editor) Undo() bool {
	lines, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(lines)
	return true
}

// Redo reapplies the last undone edit. Returns false if there is nothing
// to redo.
func (e *Editor) Redo() bool {
	lines, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(lines)
	return true
}

// ActiveLine returns the index of the line playing at pos, or -1.
func (e *Editor) ActiveLine(pos time.Duration) int {
	if e.ordered {
		return LineAt(e.lines, pos)
	}
	return scanLineAt(e.lines, pos)
}

// Generate returns the LRC text of the current timeline.
func (e *Editor) Generate() string {
	return Generate(e.lines)
}

func (e *Editor) commit(next []Line) {
	e.lines = next
	e.ordered = inParserOrder(next)
	e.history.Push(next)
}

func (e *Editor) restore(lines []Line) {
	e.lines = lines
	e.ordered = inParserOrder(lines)
	e.current = max(min(e.current, len(lines)-1), 0)
}

func (e *Editor) checkIndex(index int) error {
	if index < 0 || index >= len(e.lines) {
		return fmt.Errorf("line %d of %d: %w", index, len(e.lines), ErrIndexOutOfRange)
	}
	return nil
}
