// Package editor provides the terminal sync editor: a scrolling list of
// lyric lines timed against a playback clock.
package editor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/llehouerou/lrcsync/internal/errmsg"
	"github.com/llehouerou/lrcsync/internal/keymap"
	"github.com/llehouerou/lrcsync/internal/lyrics"
	"github.com/llehouerou/lrcsync/internal/notify"
	"github.com/llehouerou/lrcsync/internal/playback"
	"github.com/llehouerou/lrcsync/internal/ui"
	"github.com/llehouerou/lrcsync/internal/ui/scroll"
)

const (
	seekStep    = 2 * time.Second
	saveTimeout = 10 * time.Second
	defaultTick = 100 * time.Millisecond
)

// Saver persists the edited timeline.
type Saver interface {
	Save(ctx context.Context, track lyrics.TrackInfo, lines []lyrics.Line) error
}

// Config holds everything a Model needs.
type Config struct {
	Editor   *lyrics.Editor
	Saver    Saver
	Clock    playback.Clock
	Track    lyrics.TrackInfo
	Origin   string // where the lyrics were loaded from
	Tick     time.Duration
	Reporter *notify.SaveReporter // optional
}

// Model is the bubbletea model of the sync editor.
type Model struct {
	ui.Base
	editor   *lyrics.Editor
	saver    Saver
	clock    playback.Clock
	track    lyrics.TrackInfo
	origin   string
	tick     time.Duration
	reporter *notify.SaveReporter
	keys     *keymap.Resolver

	input     textinput.Model
	editing   bool
	editIndex int

	view     scroll.Viewport
	position time.Duration
	active   int

	dirty     bool
	saving    bool
	savedAt   time.Time
	status    string
	statusErr bool
	quitArmed bool
	showHelp  bool
}

// New creates the editor model.
func New(cfg Config) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "lyrics"

	tick := cfg.Tick
	if tick <= 0 {
		tick = defaultTick
	}

	return &Model{
		editor:   cfg.Editor,
		saver:    cfg.Saver,
		clock:    cfg.Clock,
		track:    cfg.Track,
		origin:   cfg.Origin,
		tick:     tick,
		reporter: cfg.Reporter,
		keys:     keymap.NewResolver(keymap.All),
		input:    ti,
		view:     scroll.New(ui.ScrollMargin),
		active:   -1,
	}
}

// Dirty reports whether there are unsaved edits.
func (m *Model) Dirty() bool { return m.dirty }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.input.Width = max(msg.Width-16, 10)
		m.ensureVisible()
		return m, nil
	case TickMsg:
		m.pollClock()
		return m, tickCmd(m.tick)
	case SavedMsg:
		m.handleSaved(msg)
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m, m.handleEditKey(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) pollClock() {
	pos, err := m.clock.Position()
	if err != nil {
		log.WithError(err).Debug("editor: reading playback position failed")
		return
	}
	m.position = pos
	m.active = m.editor.ActiveLine(pos)
}

func (m *Model) handleSaved(msg SavedMsg) {
	m.saving = false
	name := m.trackName()
	m.reporter.Report(name, msg.Err)
	if msg.Err != nil {
		m.setError(errmsg.Format(errmsg.OpLyricsSave, msg.Err))
		return
	}
	m.dirty = false
	m.savedAt = msg.At
	m.setStatus("saved")
}

func (m *Model) saveCmd() tea.Cmd {
	if m.saving {
		return nil
	}
	m.saving = true
	saver := m.saver
	track := m.track
	lines := m.editor.Lines()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		err := saver.Save(ctx, track, lines)
		return SavedMsg{Err: err, At: time.Now()}
	}
}

// startEdit opens the text input on line idx.
func (m *Model) startEdit(idx int) tea.Cmd {
	line, err := m.editor.Line(idx)
	if err != nil {
		return nil
	}
	m.editing = true
	m.editIndex = idx
	m.input.SetValue(line.Text)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.input.Blur()
		if err := m.editor.EditText(m.editIndex, m.input.Value()); err != nil {
			m.setError(errmsg.Format(errmsg.OpEditText, err))
			return nil
		}
		m.touched()
		return nil
	case "esc":
		m.editing = false
		m.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) touched() {
	m.dirty = true
	m.quitArmed = false
	m.ensureVisible()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) trackName() string {
	switch {
	case m.track.Artist != "" && m.track.Title != "":
		return m.track.Artist + " - " + m.track.Title
	case m.track.Title != "":
		return m.track.Title
	}
	return m.track.FilePath
}

// ensureVisible keeps the cursor inside the body with a scroll margin.
func (m *Model) ensureVisible() {
	m.view.Follow(m.editor.Current(), m.editor.Len(), m.BodyHeight())
}
