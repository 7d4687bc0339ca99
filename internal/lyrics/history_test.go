package lyrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func linesOf(words ...string) []Line {
	out := make([]Line, len(words))
	for i, w := range words {
		out[i] = NewLine(w)
	}
	return out
}

func TestHistory_ResetSeedsSingleSnapshot(t *testing.T) {
	h := NewHistory(0)
	h.Reset(linesOf("a"))

	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, []string{"a"}, texts(h.Current()))
}

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(0)
	h.Reset(linesOf("a"))
	h.Push(linesOf("a", "b"))
	h.Push(linesOf("a", "b", "c"))

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, texts(got))

	got, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, texts(got))

	_, ok = h.Undo()
	assert.False(t, ok, "undo past the oldest snapshot is a no-op")
	assert.Equal(t, 0, h.Cursor())

	got, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, texts(got))

	got, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, texts(got))

	_, ok = h.Redo()
	assert.False(t, ok, "redo past the newest snapshot is a no-op")
}

func TestHistory_PushTruncatesRedo(t *testing.T) {
	h := NewHistory(0)
	h.Reset(linesOf("a"))
	h.Push(linesOf("a", "b"))
	h.Push(linesOf("a", "b", "c"))

	h.Undo()
	h.Undo()
	h.Push(linesOf("x"))

	assert.Equal(t, 2, h.Len())
	assert.False(t, h.CanRedo())
	_, ok := h.Redo()
	assert.False(t, ok)
	assert.Equal(t, []string{"x"}, texts(h.Current()))
}

func TestHistory_PushWithoutReset(t *testing.T) {
	h := NewHistory(0)
	h.Push(linesOf("a"))

	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(3)
	h.Reset(linesOf("0"))
	for _, w := range []string{"1", "2", "3", "4"} {
		h.Push(linesOf(w))
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())

	h.Undo()
	got, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, []string{"2"}, texts(got))
	assert.False(t, h.CanUndo())
}

func TestHistory_SnapshotsAreIsolated(t *testing.T) {
	h := NewHistory(0)
	live := []Line{NewTimedLine(time.Second, "a")}
	h.Reset(live)

	live[0].Text = "mutated"
	assert.Equal(t, "a", h.Current()[0].Text, "stored snapshot must not alias the caller's slice")

	h.Push(linesOf("b"))
	got, _ := h.Undo()
	got[0].Text = "mutated again"
	assert.Equal(t, "a", h.Current()[0].Text, "returned snapshot must not alias storage")
}

func TestHistory_CurrentOnEmpty(t *testing.T) {
	h := NewHistory(0)
	assert.Empty(t, h.Current())
	assert.NotNil(t, h.Current())
}
