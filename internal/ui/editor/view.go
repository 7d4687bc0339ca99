package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/lrcsync/internal/keymap"
	"github.com/llehouerou/lrcsync/internal/lyrics"
	"github.com/llehouerou/lrcsync/internal/ui/overlay"
	"github.com/llehouerou/lrcsync/internal/ui/render"
	"github.com/llehouerou/lrcsync/internal/ui/styles"
)

// gutter is "▶ [mm:ss.xx] " wide.
const gutterWidth = 2 + 10 + 1

const untimedStamp = "[--:--.--]"

// View implements tea.Model.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	body := m.renderBody()
	if m.showHelp {
		body = overlay.Center(body, m.renderHelp(), m.Width(), m.BodyHeight())
	}

	parts := []string{m.renderHeader(), body, m.renderStatus(), m.renderHints()}
	return strings.Join(parts, "\n")
}

func (m *Model) renderHeader() string {
	s := styles.T().S()
	title := s.Title.Render(render.Truncate(m.trackName(), max(m.Width()-20, 10)))
	right := s.Muted.Render(m.origin)
	return render.Row(title, right, m.Width()) + "\n" + s.Subtle.Render(strings.Repeat("─", m.Width()))
}

func (m *Model) renderBody() string {
	height := m.BodyHeight()
	rows := make([]string, 0, height)

	if m.editor.Len() == 0 {
		rows = append(rows, styles.T().S().Subtle.Render("  no lyrics, press o to add a line"))
	}

	start, end := m.view.VisibleRange(m.editor.Len(), height)
	for i := start; i < end; i++ {
		line, _ := m.editor.Line(i)
		rows = append(rows, m.renderLine(i, line))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderLine(i int, line lyrics.Line) string {
	s := styles.T().S()
	width := m.Width()

	marker := "  "
	if i == m.active {
		marker = s.Active.Render("▶ ")
	}

	stamp := s.Untimed.Render(untimedStamp)
	if line.Timed {
		if ts, err := lyrics.FormatTimestamp(line.Time); err == nil {
			stamp = s.Timestamp.Render(ts)
		}
	}

	textWidth := max(width-gutterWidth, 1)
	var text string
	switch {
	case m.editing && i == m.editIndex:
		text = m.input.View()
	case line.IsBlank():
		text = s.Subtle.Render("·")
	case i == m.active:
		text = s.Active.Render(render.Truncate(line.Text, textWidth))
	default:
		text = s.Base.Render(render.Truncate(line.Text, textWidth))
	}

	row := marker + stamp + " " + text
	if i == m.editor.Current() {
		row = s.Cursor.Render(row + strings.Repeat(" ", max(width-lipgloss.Width(row), 0)))
	}
	return render.TruncateStyled(row, width)
}

func (m *Model) renderStatus() string {
	s := styles.T().S()

	left := []string{
		formatPosition(m.position),
		m.clock.State().String(),
		fmt.Sprintf("line %d/%d", min(m.editor.Current()+1, m.editor.Len()), m.editor.Len()),
		fmt.Sprintf("synced %d", countTimed(m.editor.Lines())),
	}
	if m.editor.AutoAdvance() {
		left = append(left, "auto")
	}

	var right string
	switch {
	case m.status != "" && m.statusErr:
		right = s.Error.Render(m.status)
	case m.saving:
		right = s.Muted.Render("saving…")
	case m.dirty:
		right = s.Warning.Render("modified")
	case m.status != "":
		right = s.Success.Render(m.status)
	}
	if !m.dirty && !m.savedAt.IsZero() && !m.statusErr {
		right = s.Success.Render("saved " + humanize.Time(m.savedAt))
	}

	row := render.Row(s.Muted.Render(strings.Join(left, " · ")), right, m.Width())
	return render.TruncateStyled(row, m.Width())
}

func (m *Model) renderHints() string {
	s := styles.T().S()
	hints := []keymap.Action{
		keymap.ActionSync, keymap.ActionBack, keymap.ActionEditText,
		keymap.ActionPlayPause, keymap.ActionUndo, keymap.ActionSave, keymap.ActionHelp,
	}
	if m.editing {
		return s.Subtle.Render("enter confirm · esc cancel")
	}

	parts := make([]string, 0, len(hints))
	for _, a := range hints {
		keys := m.keys.KeysFor(a)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keymap.DisplayKey(keys[0])+" "+string(a))
	}
	return render.TruncateStyled(s.Subtle.Render(strings.Join(parts, " · ")), m.Width())
}

func (m *Model) renderHelp() string {
	s := styles.T().S()
	split := (len(keymap.Contexts) + 1) / 2
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		helpColumn(keymap.Contexts[:split]...),
		"    ",
		helpColumn(keymap.Contexts[split:]...),
	)
	return s.Box.Render(s.Title.Render("Keys") + "\n\n" + body)
}

func helpColumn(contexts ...string) string {
	s := styles.T().S()
	var lines []string
	for _, ctx := range contexts {
		lines = append(lines, s.Muted.Render(ctx))
		for _, kb := range keymap.ByContext(ctx) {
			keys := make([]string, len(kb.Keys))
			for i, k := range kb.Keys {
				keys[i] = keymap.DisplayKey(k)
			}
			lines = append(lines, s.Key.Render(render.Pad(strings.Join(keys, "/"), 14))+kb.Description)
		}
	}
	return strings.Join(lines, "\n")
}

// formatPosition renders a playback position as m:ss.xx.
func formatPosition(d time.Duration) string {
	d = max(d, 0)
	m := d / time.Minute
	sec := (d % time.Minute) / time.Second
	cs := (d % time.Second) / (10 * time.Millisecond)
	return fmt.Sprintf("%d:%02d.%02d", m, sec, cs)
}

func countTimed(lines []lyrics.Line) int {
	n := 0
	for _, l := range lines {
		if l.Timed {
			n++
		}
	}
	return n
}
