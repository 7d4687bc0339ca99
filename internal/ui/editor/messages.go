package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to poll the playback clock.
type TickMsg time.Time

// SavedMsg reports the outcome of a save.
type SavedMsg struct {
	Err error
	At  time.Time
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
