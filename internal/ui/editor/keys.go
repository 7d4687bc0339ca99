package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/lrcsync/internal/errmsg"
	"github.com/llehouerou/lrcsync/internal/keymap"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	action := m.keys.Resolve(msg.String())
	if action != keymap.ActionQuit {
		m.quitArmed = false
	}
	if m.showHelp && action != keymap.ActionQuit {
		m.showHelp = false
		if action == keymap.ActionHelp {
			return nil
		}
	}

	switch action {
	case keymap.ActionQuit:
		if m.dirty && !m.quitArmed {
			m.quitArmed = true
			m.setError("unsaved changes: press q again to quit, w to save")
			return nil
		}
		return tea.Quit
	case keymap.ActionSave:
		return m.saveCmd()
	case keymap.ActionHelp:
		m.showHelp = true
		return nil

	case keymap.ActionSync:
		m.syncCurrent()
	case keymap.ActionBack:
		m.editor.BackLine()
		m.ensureVisible()
	case keymap.ActionToggleAutoAdvance:
		m.editor.SetAutoAdvance(!m.editor.AutoAdvance())
		if m.editor.AutoAdvance() {
			m.setStatus("auto-advance on")
		} else {
			m.setStatus("auto-advance off")
		}

	case keymap.ActionAddBelow:
		after := m.editor.Current()
		if m.editor.Len() == 0 {
			after = -1
		}
		return m.addLine(after)
	case keymap.ActionAddAbove:
		return m.addLine(m.editor.Current() - 1)
	case keymap.ActionRemove:
		if err := m.editor.RemoveLine(m.editor.Current()); err != nil {
			m.setError(errmsg.Format(errmsg.OpRemoveLine, err))
			return nil
		}
		m.touched()
	case keymap.ActionEditText:
		return m.startEdit(m.editor.Current())
	case keymap.ActionUndo:
		if !m.editor.Undo() {
			m.setStatus("nothing to undo")
			return nil
		}
		m.touched()
	case keymap.ActionRedo:
		if !m.editor.Redo() {
			m.setStatus("nothing to redo")
			return nil
		}
		m.touched()

	case keymap.ActionPlayPause:
		if err := m.clock.PlayPause(); err != nil {
			m.setError(errmsg.Format(errmsg.OpPlaybackToggle, err))
		}
		m.pollClock()
	case keymap.ActionSeekForward:
		m.seek(seekStep)
	case keymap.ActionSeekBack:
		m.seek(-seekStep)
	case keymap.ActionSeekToLine:
		line, err := m.editor.Line(m.editor.Current())
		if err != nil || !line.Timed {
			m.setStatus("line is not synced")
			return nil
		}
		m.seek(line.Time - m.position)

	case keymap.ActionMoveDown:
		m.moveTo(m.editor.Current() + 1)
	case keymap.ActionMoveUp:
		m.moveTo(m.editor.Current() - 1)
	case keymap.ActionJumpStart:
		m.moveTo(0)
	case keymap.ActionJumpEnd:
		m.moveTo(m.editor.Len() - 1)
	case keymap.ActionPageDown:
		m.moveTo(m.editor.Current() + max(m.BodyHeight()/2, 1))
	case keymap.ActionPageUp:
		m.moveTo(m.editor.Current() - max(m.BodyHeight()/2, 1))
	case keymap.ActionJumpActive:
		if m.active >= 0 {
			m.moveTo(m.active)
			m.view.Center(m.active, m.editor.Len(), m.BodyHeight())
		}
	}
	return nil
}

// syncCurrent stamps the cursor line with a fresh clock reading.
func (m *Model) syncCurrent() {
	if m.editor.Len() == 0 {
		return
	}
	pos, err := m.clock.Position()
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpSyncLine, err))
		return
	}
	if err := m.editor.SyncCurrent(pos); err != nil {
		m.setError(errmsg.Format(errmsg.OpSyncLine, err))
		return
	}
	m.position = pos
	m.active = m.editor.ActiveLine(pos)
	m.touched()
}

func (m *Model) addLine(after int) tea.Cmd {
	idx, err := m.editor.AddLine(after)
	if err != nil {
		m.setError(errmsg.Format(errmsg.OpAddLine, err))
		return nil
	}
	m.touched()
	return m.startEdit(idx)
}

func (m *Model) seek(offset time.Duration) {
	if err := m.clock.Seek(offset); err != nil {
		m.setError(errmsg.Format(errmsg.OpPlaybackSeek, err))
		return
	}
	m.pollClock()
}

func (m *Model) moveTo(idx int) {
	n := m.editor.Len()
	if n == 0 {
		return
	}
	idx = max(0, min(idx, n-1))
	if err := m.editor.SetCurrent(idx); err != nil {
		m.setError(errmsg.Format(errmsg.OpMoveCursor, err))
		return
	}
	m.ensureVisible()
}
