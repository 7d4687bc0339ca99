package lyrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/llehouerou/lrcsync/internal/lrclib"
)

// ErrSave wraps every failure reported by Source.Save. Saving can be
// retried; the editing session is never affected.
var ErrSave = errors.New("save lyrics")

// Load origins reported in LoadResult.Source.
const (
	OriginDraft = "draft"
	OriginLocal = "local"
	OriginCache = "cache"
	OriginTags  = "tags"
	OriginAPI   = "api"
	OriginPlain = "plain"
	OriginNone  = "none"
)

// Fetcher looks lyrics up remotely.
type Fetcher interface {
	Get(ctx context.Context, artist, title string, duration time.Duration) (*lrclib.LyricsResult, error)
}

// DraftStore persists generated LRC per track and may hold a plain text
// fallback for tracks that were never synced.
type DraftStore interface {
	Draft(ctx context.Context, path string) (lrc, plain string, err error)
	SaveDraft(ctx context.Context, path, lrc string) error
}

// TagStore reads and writes lyrics embedded in audio files.
type TagStore interface {
	ReadLyrics(path string) (string, error)
	WriteLyrics(path, text string) error
}

// Source loads lyrics from drafts, local files, cache, tags or the lrclib
// API, and saves edited lyrics back.
type Source struct {
	client       Fetcher
	drafts       DraftStore
	tags         TagStore
	cacheDir     string
	writeLRCFile bool
	embedTags    bool
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithFetcher enables remote lookups.
func WithFetcher(f Fetcher) SourceOption {
	return func(s *Source) { s.client = f }
}

// WithDrafts sets the draft store.
func WithDrafts(d DraftStore) SourceOption {
	return func(s *Source) { s.drafts = d }
}

// WithTags enables reading embedded lyrics, and writing them when
// embed is true.
func WithTags(t TagStore, embed bool) SourceOption {
	return func(s *Source) {
		s.tags = t
		s.embedTags = embed
	}
}

// WithCacheDir sets where API results are cached.
func WithCacheDir(dir string) SourceOption {
	return func(s *Source) { s.cacheDir = dir }
}

// WithLRCFile enables writing a .lrc next to the audio file on save.
func WithLRCFile(enabled bool) SourceOption {
	return func(s *Source) { s.writeLRCFile = enabled }
}

// NewSource creates a new lyrics source.
func NewSource(opts ...SourceOption) *Source {
	s := &Source{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TrackInfo contains the information needed to load and save lyrics.
type TrackInfo struct {
	FilePath string // Path to audio file, or to the .lrc itself
	Artist   string
	Title    string
	Album    string
	Duration time.Duration
}

// IsLRCFile reports whether the track points straight at an .lrc file.
func (t TrackInfo) IsLRCFile() bool {
	return strings.EqualFold(filepath.Ext(t.FilePath), ".lrc")
}

// LRCPath returns the .lrc path lyrics for this track are saved to.
func (t TrackInfo) LRCPath() string {
	if t.FilePath == "" || t.IsLRCFile() {
		return t.FilePath
	}
	return lrcPathForAudio(t.FilePath)
}

// LoadResult contains the result of a lyrics load.
type LoadResult struct {
	Lyrics *Lyrics
	Source string
}

// Load retrieves lyrics for a track using the priority order:
//  1. Saved draft
//  2. Local .lrc file (same directory as audio file)
//  3. Cached .lrc file
//  4. Lyrics embedded in the audio file tags
//  5. lrclib API (and cache the result)
//  6. Plain text kept with the draft
//
// Failures along the way are logged and the next source is tried. When
// everything fails the result holds an empty timeline.
func (s *Source) Load(ctx context.Context, track TrackInfo) LoadResult {
	logger := log.WithField("track", track.FilePath)
	var plain string

	if s.drafts != nil && track.FilePath != "" {
		lrc, text, err := s.drafts.Draft(ctx, track.FilePath)
		switch {
		case err != nil:
			logger.WithError(err).Warn("lyrics: draft lookup failed")
		case strings.TrimSpace(lrc) != "":
			return s.result(OriginDraft, lrc, false)
		}
		plain = text
	}

	if path := track.LRCPath(); path != "" {
		if lyrics, err := s.loadFromFile(path); err == nil {
			return LoadResult{Lyrics: lyrics, Source: OriginLocal}
		} else if !errors.Is(err, os.ErrNotExist) {
			logger.WithError(err).Warn("lyrics: reading .lrc failed")
		}
	}

	if track.Artist != "" && track.Title != "" {
		if lyrics, err := s.loadFromFile(s.cachePath(track.Artist, track.Title)); err == nil {
			return LoadResult{Lyrics: lyrics, Source: OriginCache}
		}
	}

	if s.tags != nil && track.FilePath != "" && !track.IsLRCFile() {
		text, err := s.tags.ReadLyrics(track.FilePath)
		switch {
		case err != nil:
			logger.WithError(err).Info("lyrics: no embedded lyrics")
		case looksLikeLRC(text):
			return s.result(OriginTags, text, false)
		case strings.TrimSpace(text) != "" && plain == "":
			plain = text
		}
	}

	if s.client != nil && track.Artist != "" && track.Title != "" {
		if result, ok := s.fetchFromAPI(ctx, track); ok {
			return result
		}
	}

	if strings.TrimSpace(plain) != "" {
		return s.result(OriginPlain, plain, true)
	}

	logger.Info("lyrics: nothing found, starting empty")
	return LoadResult{Lyrics: &Lyrics{Lines: []Line{}}, Source: OriginNone}
}

// fetchFromAPI fetches lyrics from the lrclib API.
func (s *Source) fetchFromAPI(ctx context.Context, track TrackInfo) (LoadResult, bool) {
	result, err := s.client.Get(ctx, track.Artist, track.Title, track.Duration)
	if err != nil {
		// ErrNotFound is not a real error, just means no lyrics available
		if !errors.Is(err, lrclib.ErrNotFound) {
			log.WithError(err).WithField("track", track.FilePath).Warn("lyrics: lrclib lookup failed")
		}
		return LoadResult{}, false
	}

	var lr LoadResult
	switch {
	case result.HasSyncedLyrics():
		lr = s.result(OriginAPI, result.SyncedLyrics, false)
		if err := s.saveToCache(track.Artist, track.Title, result.SyncedLyrics); err != nil {
			log.WithError(err).Debug("lyrics: caching lrclib result failed")
		}
	case result.HasPlainLyrics():
		lr = s.result(OriginAPI, result.PlainLyrics, true)
	default:
		return LoadResult{}, false
	}
	if len(lr.Lyrics.Lines) == 0 {
		return LoadResult{}, false
	}

	// Fill in metadata if missing
	if lr.Lyrics.Artist == "" {
		lr.Lyrics.Artist = result.ArtistName
	}
	if lr.Lyrics.Title == "" {
		lr.Lyrics.Title = result.TrackName
	}
	if lr.Lyrics.Album == "" {
		lr.Lyrics.Album = result.AlbumName
	}
	return lr, true
}

func (s *Source) result(origin, text string, freeform bool) LoadResult {
	return LoadResult{
		Lyrics: Parse(text, ParseOptions{FilterMetadata: freeform}),
		Source: origin,
	}
}

// Save generates LRC from lines and writes it to every configured target.
func (s *Source) Save(ctx context.Context, track TrackInfo, lines []Line) error {
	text := Generate(lines)
	if text != "" {
		text += "\n"
	}

	var errs []error
	targets := 0

	if s.drafts != nil && track.FilePath != "" {
		targets++
		if err := s.drafts.SaveDraft(ctx, track.FilePath, text); err != nil {
			errs = append(errs, fmt.Errorf("draft: %w", err))
		}
	}

	if path := track.LRCPath(); path != "" && (s.writeLRCFile || track.IsLRCFile()) {
		targets++
		if err := writeFileAtomic(path, []byte(text)); err != nil {
			errs = append(errs, fmt.Errorf("lrc file: %w", err))
		}
	}

	if s.tags != nil && s.embedTags && track.FilePath != "" && !track.IsLRCFile() {
		targets++
		if err := s.tags.WriteLyrics(track.FilePath, text); err != nil {
			errs = append(errs, fmt.Errorf("tags: %w", err))
		}
	}

	if targets == 0 {
		return fmt.Errorf("%w: no save target configured", ErrSave)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrSave, errors.Join(errs...))
	}
	log.WithFields(log.Fields{"track": track.FilePath, "targets": targets}).Info("lyrics: saved")
	return nil
}

// lrcPathForAudio returns the expected .lrc file path for an audio file.
func lrcPathForAudio(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return audioPath[:len(audioPath)-len(ext)] + ".lrc"
}

// loadFromFile loads lyrics from an LRC file.
func (s *Source) loadFromFile(path string) (*Lyrics, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLRC(f, ParseOptions{})
}

// cachePath returns the cache file path for a track.
func (s *Source) cachePath(artist, title string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(artist), sanitizeFilename(title)+".lrc")
}

// saveToCache saves LRC content to the cache directory.
func (s *Source) saveToCache(artist, title, content string) error {
	path := s.cachePath(artist, title)
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

// writeFileAtomic replaces path through a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lrcsync-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// sanitizeFilename removes or replaces characters that are problematic in filenames.
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
