// Package keymap defines the key bindings of the sync editor.
package keymap

// Binding represents a key binding with its action and description.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "sync", "edit", "playback", "navigation"
}

// Contexts in help display order.
var Contexts = []string{"sync", "edit", "playback", "navigation", "global"}

// All contains all key bindings.
var All = []Binding{
	// Sync
	{ActionSync, []string{" "}, "Sync line to position", "sync"},
	{ActionBack, []string{"b"}, "Back one line", "sync"},
	{ActionToggleAutoAdvance, []string{"a"}, "Toggle auto-advance", "sync"},

	// Editing
	{ActionAddBelow, []string{"o"}, "Add line below", "edit"},
	{ActionAddAbove, []string{"O"}, "Add line above", "edit"},
	{ActionRemove, []string{"d"}, "Remove line", "edit"},
	{ActionEditText, []string{"e"}, "Edit text", "edit"},
	{ActionUndo, []string{"u"}, "Undo", "edit"},
	{ActionRedo, []string{"ctrl+r"}, "Redo", "edit"},

	// Playback
	{ActionPlayPause, []string{"p"}, "Play/pause", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +2s", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -2s", "playback"},
	{ActionSeekToLine, []string{"enter"}, "Seek to line", "playback"},

	// Navigation
	{ActionMoveDown, []string{"j", "down"}, "Next line", "navigation"},
	{ActionMoveUp, []string{"k", "up"}, "Previous line", "navigation"},
	{ActionJumpStart, []string{"g", "home"}, "First line", "navigation"},
	{ActionJumpEnd, []string{"G", "end"}, "Last line", "navigation"},
	{ActionPageDown, []string{"ctrl+d", "pgdown"}, "Half page down", "navigation"},
	{ActionPageUp, []string{"ctrl+u", "pgup"}, "Half page up", "navigation"},
	{ActionJumpActive, []string{"c"}, "Jump to playing line", "navigation"},

	// Global
	{ActionSave, []string{"w", "ctrl+s"}, "Save", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// DisplayKey returns the label shown for a key in help text.
func DisplayKey(key string) string {
	switch key {
	case " ":
		return "space"
	case "right":
		return "→"
	case "left":
		return "←"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return key
}
