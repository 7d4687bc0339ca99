package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/lrcsync/internal/config"
	"github.com/llehouerou/lrcsync/internal/errmsg"
	"github.com/llehouerou/lrcsync/internal/lrclib"
	"github.com/llehouerou/lrcsync/internal/lyrics"
	"github.com/llehouerou/lrcsync/internal/store"
)

// cli holds what every command shares once the config is loaded.
type cli struct {
	configFile string
	cfg        *config.Config
	logFile    *os.File
}

// opError renders err through errmsg while keeping it unwrappable.
type opError struct {
	op      errmsg.Op
	context string
	err     error
}

func (e *opError) Error() string {
	if e.context != "" {
		return errmsg.FormatWith(e.op, e.context, e.err)
	}
	return errmsg.Format(e.op, e.err)
}

func (e *opError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "lrcsync",
		Short: "Sync LRC lyrics against a playing track",
		Long: `lrcsync loads lyrics for a track from drafts, .lrc files, tags or lrclib.net
and lets you time each line against the playback position of an MPRIS
player or a built-in stopwatch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Name() == "edit")
		},
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "extra config file, read last")

	root.AddCommand(
		c.editCmd(),
		c.fmtCmd(),
		c.atCmd(),
		c.fetchCmd(),
		c.draftsCmd(),
	)
	return root
}

// setup loads the config and points logrus at stderr, or at the log file
// when a TUI owns the terminal.
func (c *cli) setup(tui bool) error {
	var extra []string
	if c.configFile != "" {
		if _, err := os.Stat(c.configFile); err != nil {
			return &opError{op: errmsg.OpConfigLoad, context: c.configFile, err: err}
		}
		extra = append(extra, c.configFile)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return &opError{op: errmsg.OpConfigLoad, err: err}
	}
	c.cfg = cfg

	level := log.InfoLevel
	if cfg.Log.Level != "" {
		if level, err = log.ParseLevel(cfg.Log.Level); err != nil {
			level = log.InfoLevel
			log.WithField("level", cfg.Log.Level).Warn("unknown log level, using info")
		}
	}
	log.SetLevel(level)

	if !tui {
		log.SetOutput(os.Stderr)
		return nil
	}

	path, err := cfg.GetLogFile()
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	c.logFile = f
	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	return nil
}

func (c *cli) closeLog() {
	if c.logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	c.logFile.Close()
	c.logFile = nil
}

func (c *cli) openStore() (*store.Store, error) {
	path, err := c.cfg.GetDBPath()
	if err != nil {
		return nil, &opError{op: errmsg.OpDBOpen, err: err}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, &opError{op: errmsg.OpDBOpen, context: path, err: err}
	}
	return st, nil
}

func (c *cli) lrclibClient() *lrclib.Client {
	return lrclib.New(c.cfg.Lrclib.URL, c.cfg.LrclibTimeout())
}

func (c *cli) fmtCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Parse lyrics and print them back as normalized LRC",
		Long:  "Parse an .lrc file (or stdin) and print the sorted timeline. Metadata tags are dropped.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readLyrics(cmd, args, plain)
			if err != nil {
				return err
			}
			return lyrics.WriteLRC(cmd.OutOrStdout(), l.Lines)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "treat input as pasted text and drop every [tag:value] line")
	return cmd
}

func (c *cli) atCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "at <file> <seconds>",
		Short: "Print the line active at a playback position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := strconv.ParseFloat(args[1], 64)
			if err != nil || sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
				return fmt.Errorf("invalid position %q: %w", args[1], lyrics.ErrInvalidTimestamp)
			}
			l, err := readLyrics(cmd, args[:1], false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			idx := l.LineAt(time.Duration(math.Round(sec * float64(time.Second))))
			if idx < 0 {
				fmt.Fprintln(out, "-1")
				return nil
			}
			fmt.Fprintf(out, "%d\t%s\n", idx, l.Lines[idx].Text)
			return nil
		},
	}
}

func (c *cli) fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <artist> <title>",
		Short: "Look lyrics up on lrclib.net and print them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Lrclib.Disabled {
				return errors.New("lrclib lookups are disabled in the config")
			}
			artist, title := args[0], args[1]
			client := c.lrclibClient()

			res, err := client.Get(cmd.Context(), artist, title, 0)
			if errors.Is(err, lrclib.ErrNotFound) {
				log.WithFields(log.Fields{"artist": artist, "title": title}).Debug("fetch: no exact match, searching")
				res, err = searchBest(cmd, client, artist+" "+title)
			}
			if err != nil {
				return &opError{op: errmsg.OpLyricsFetch, context: artist + " - " + title, err: err}
			}

			out := cmd.OutOrStdout()
			if res.HasSyncedLyrics() {
				return lyrics.WriteLRC(out, lyrics.Parse(res.SyncedLyrics, lyrics.ParseOptions{}).Lines)
			}
			if !res.HasPlainLyrics() {
				return &opError{op: errmsg.OpLyricsFetch, context: artist + " - " + title, err: lrclib.ErrNotFound}
			}
			_, err = fmt.Fprintln(out, strings.TrimSpace(res.PlainLyrics))
			return err
		},
	}
}

// searchBest returns the first search hit with synced lyrics, else the
// first one with any lyrics.
func searchBest(cmd *cobra.Command, client *lrclib.Client, query string) (*lrclib.LyricsResult, error) {
	results, err := client.Search(cmd.Context(), query)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].HasSyncedLyrics() {
			return &results[i], nil
		}
	}
	for i := range results {
		if results[i].HasPlainLyrics() {
			return &results[i], nil
		}
	}
	return nil, lrclib.ErrNotFound
}

func (c *cli) draftsCmd() *cobra.Command {
	var deletePath string
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "List saved drafts, or delete one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if deletePath != "" {
				if err := st.Delete(cmd.Context(), deletePath); err != nil {
					return &opError{op: errmsg.OpDraftsDelete, context: deletePath, err: err}
				}
				fmt.Fprintf(out, "deleted draft for %s\n", deletePath)
				return nil
			}

			records, err := st.List(cmd.Context())
			if err != nil {
				return &opError{op: errmsg.OpDraftsList, err: err}
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "no drafts")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, r := range records {
				kind := "plain"
				if r.LRC != "" {
					kind = "lrc"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Time(r.UpdatedAt), kind, r.Path)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&deletePath, "delete", "", "delete the draft stored for this path")
	return cmd
}

// readLyrics parses args[0], or stdin when there is no file or it is "-".
func readLyrics(cmd *cobra.Command, args []string, plain bool) (*lyrics.Lyrics, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) > 0 && args[0] != "-" {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return nil, &opError{op: errmsg.OpLyricsParse, context: name, err: err}
		}
		defer f.Close()
		r = f
	}

	l, err := lyrics.ParseLRC(r, lyrics.ParseOptions{FilterMetadata: plain})
	if err != nil {
		return nil, &opError{op: errmsg.OpLyricsParse, context: name, err: err}
	}
	return l, nil
}
