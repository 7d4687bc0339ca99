package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/lrcsync/internal/config"
	"github.com/llehouerou/lrcsync/internal/errmsg"
	"github.com/llehouerou/lrcsync/internal/lyrics"
	"github.com/llehouerou/lrcsync/internal/mpris"
	"github.com/llehouerou/lrcsync/internal/notify"
	"github.com/llehouerou/lrcsync/internal/playback"
	"github.com/llehouerou/lrcsync/internal/store"
	"github.com/llehouerou/lrcsync/internal/tags"
	"github.com/llehouerou/lrcsync/internal/ui/editor"
)

func (c *cli) editCmd() *cobra.Command {
	var stopwatch bool
	cmd := &cobra.Command{
		Use:   "edit [audio-or-lrc]",
		Short: "Open the sync editor",
		Long: `Open the sync editor for an audio file or an .lrc file. Without a path the
file currently playing in the MPRIS player is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer c.closeLog()
			return c.runEdit(cmd, args, stopwatch)
		},
	}
	cmd.Flags().BoolVar(&stopwatch, "stopwatch", false, "time against the built-in stopwatch instead of a player")
	return cmd
}

func (c *cli) runEdit(cmd *cobra.Command, args []string, stopwatch bool) error {
	clock, closeClock := c.openClock(stopwatch)
	defer closeClock()

	path, err := editPath(args, clock)
	if err != nil {
		return &opError{op: errmsg.OpLyricsLoad, err: err}
	}
	if _, err := os.Stat(path); err != nil {
		return &opError{op: errmsg.OpLyricsLoad, context: path, err: err}
	}
	track := trackInfo(path, clock)

	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	src := c.newSource(st)
	res := src.Load(cmd.Context(), track)
	log.WithFields(log.Fields{
		"path":   track.FilePath,
		"origin": res.Source,
		"lines":  len(res.Lyrics.Lines),
	}).Info("edit: lyrics loaded")

	var reporter *notify.SaveReporter
	if c.cfg.Save.Notify {
		n, err := notify.New()
		if err != nil {
			log.WithError(err).Warn("edit: notifications unavailable")
		}
		reporter = notify.NewSaveReporter(n)
		defer reporter.Close()
	}

	model := editor.New(editor.Config{
		Editor: lyrics.NewEditor(res.Lyrics.Lines,
			lyrics.WithAutoAdvance(c.cfg.AutoAdvance()),
			lyrics.WithHistoryLimit(c.cfg.HistoryLimit()),
		),
		Saver:    src,
		Clock:    clock,
		Track:    track,
		Origin:   res.Source,
		Tick:     c.cfg.GetPlaybackConfig().Tick(),
		Reporter: reporter,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*editor.Model); ok && m.Dirty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "quit with unsaved changes")
	}
	return nil
}

// openClock connects to the configured player, falling back to a stopwatch.
func (c *cli) openClock(stopwatch bool) (playback.Clock, func()) {
	pb := c.cfg.GetPlaybackConfig()
	if pb.Source == config.PlaybackMPRIS && !stopwatch {
		p, err := mpris.Connect(pb.Player)
		if err == nil {
			log.WithField("player", p.Name()).Info("edit: timing against player")
			return p, func() { p.Close() }
		}
		log.WithError(err).Warn(errmsg.Format(errmsg.OpPlaybackConnect, err) + ", using stopwatch")
	}
	return playback.NewStopwatch(), func() {}
}

func (c *cli) newSource(st *store.Store) *lyrics.Source {
	opts := []lyrics.SourceOption{
		lyrics.WithDrafts(st),
		lyrics.WithTags(tags.Files{}, c.cfg.Save.EmbedTags),
		lyrics.WithCacheDir(c.cfg.GetCacheDir()),
		lyrics.WithLRCFile(c.cfg.WriteLRCFile()),
	}
	if !c.cfg.Lrclib.Disabled {
		opts = append(opts, lyrics.WithFetcher(c.lrclibClient()))
	}
	return lyrics.NewSource(opts...)
}

// editPath returns the path argument or the file the player is on.
func editPath(args []string, clock playback.Clock) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	p, ok := clock.(*mpris.Player)
	if !ok {
		return "", errors.New("no file given and no player to ask")
	}
	meta, err := p.Metadata()
	if err != nil {
		return "", err
	}
	if meta.Path == "" {
		return "", fmt.Errorf("%s is not playing a local file", p.Name())
	}
	return meta.Path, nil
}

// trackInfo fills artist and title from the file tags, then from the
// player when it is on the same file.
func trackInfo(path string, clock playback.Clock) lyrics.TrackInfo {
	track := lyrics.TrackInfo{FilePath: path}
	if !tags.IsAudioFile(path) {
		return track
	}

	if info, err := tags.Read(path); err != nil {
		log.Warn(errmsg.FormatWith(errmsg.OpTagsRead, path, err))
	} else {
		track.Artist = info.Artist
		track.Title = info.Title
		track.Album = info.Album
		track.Duration = info.Duration
	}

	p, ok := clock.(*mpris.Player)
	if !ok {
		return track
	}
	meta, err := p.Metadata()
	if err != nil || meta.Path != path {
		return track
	}
	if track.Artist == "" {
		track.Artist = meta.Artist
	}
	if track.Title == "" {
		track.Title = meta.Title
	}
	if track.Album == "" {
		track.Album = meta.Album
	}
	if track.Duration == 0 {
		track.Duration = meta.Length
	}
	return track
}
