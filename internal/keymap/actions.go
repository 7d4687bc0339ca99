package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionSave Action = "save"
	ActionHelp Action = "help"

	// Sync actions
	ActionSync              Action = "sync"
	ActionBack              Action = "back"
	ActionToggleAutoAdvance Action = "toggle_auto_advance"

	// Edit actions
	ActionAddBelow Action = "add_below"
	ActionAddAbove Action = "add_above"
	ActionRemove   Action = "remove"
	ActionEditText Action = "edit_text"
	ActionUndo     Action = "undo"
	ActionRedo     Action = "redo"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionSeekToLine  Action = "seek_to_line"

	// Navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionJumpStart  Action = "jump_start"
	ActionJumpEnd    Action = "jump_end"
	ActionPageDown   Action = "page_down"
	ActionPageUp     Action = "page_up"
	ActionJumpActive Action = "jump_active"
)
