package lyrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lrcsync/internal/lrclib"
)

type fakeFetcher struct {
	result *lrclib.LyricsResult
	err    error
	calls  int
}

func (f *fakeFetcher) Get(_ context.Context, _, _ string, _ time.Duration) (*lrclib.LyricsResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeDrafts struct {
	lrc, plain string
	err        error
	saved      map[string]string
	saveErr    error
}

func (d *fakeDrafts) Draft(_ context.Context, _ string) (string, string, error) {
	return d.lrc, d.plain, d.err
}

func (d *fakeDrafts) SaveDraft(_ context.Context, path, lrc string) error {
	if d.saveErr != nil {
		return d.saveErr
	}
	if d.saved == nil {
		d.saved = map[string]string{}
	}
	d.saved[path] = lrc
	return nil
}

type fakeTags struct {
	text     string
	readErr  error
	written  string
	writeErr error
}

func (f *fakeTags) ReadLyrics(string) (string, error) { return f.text, f.readErr }

func (f *fakeTags) WriteLyrics(_, text string) error {
	f.written = text
	return f.writeErr
}

func audioTrack(t *testing.T) TrackInfo {
	t.Helper()
	return TrackInfo{
		FilePath: filepath.Join(t.TempDir(), "song.mp3"),
		Artist:   "Band",
		Title:    "Song",
	}
}

func TestSource_LoadDraftFirst(t *testing.T) {
	track := audioTrack(t)
	require.NoError(t, os.WriteFile(track.LRCPath(), []byte("[00:09.00] local"), 0o600))
	fetcher := &fakeFetcher{}

	s := NewSource(
		WithDrafts(&fakeDrafts{lrc: "[00:01.00] draft\n[xyz:kept]"}),
		WithFetcher(fetcher),
	)
	res := s.Load(context.Background(), track)

	assert.Equal(t, OriginDraft, res.Source)
	assert.Equal(t, []string{"draft", "[xyz:kept]"}, texts(res.Lyrics.Lines))
	assert.Zero(t, fetcher.calls)
}

func TestSource_LoadLocalFile(t *testing.T) {
	track := audioTrack(t)
	require.NoError(t, os.WriteFile(track.LRCPath(), []byte("[ti:x]\n[00:02.00] b\n[00:01.00] a"), 0o600))

	res := NewSource().Load(context.Background(), track)

	assert.Equal(t, OriginLocal, res.Source)
	assert.Equal(t, []string{"a", "b"}, texts(res.Lyrics.Lines))
	assert.Equal(t, "x", res.Lyrics.Title)
}

func TestSource_LoadLRCTrackDirectly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.lrc")
	require.NoError(t, os.WriteFile(path, []byte("[00:01.00] a"), 0o600))

	res := NewSource().Load(context.Background(), TrackInfo{FilePath: path})
	assert.Equal(t, OriginLocal, res.Source)
	assert.Len(t, res.Lyrics.Lines, 1)
}

func TestSource_LoadCache(t *testing.T) {
	track := audioTrack(t)
	cacheDir := t.TempDir()
	s := NewSource(WithCacheDir(cacheDir))
	require.NoError(t, s.saveToCache(track.Artist, track.Title, "[00:03.00] cached"))

	res := s.Load(context.Background(), track)
	assert.Equal(t, OriginCache, res.Source)
	assert.Equal(t, []string{"cached"}, texts(res.Lyrics.Lines))
}

func TestSource_LoadEmbeddedSynced(t *testing.T) {
	track := audioTrack(t)
	s := NewSource(WithTags(&fakeTags{text: "[00:01.00] embedded"}, false))

	res := s.Load(context.Background(), track)
	assert.Equal(t, OriginTags, res.Source)
	assert.True(t, res.Lyrics.IsSynced())
}

func TestSource_LoadAPISyncedIsCached(t *testing.T) {
	track := audioTrack(t)
	cacheDir := t.TempDir()
	fetcher := &fakeFetcher{result: &lrclib.LyricsResult{
		ArtistName:   "Band",
		TrackName:    "Song",
		AlbumName:    "Record",
		SyncedLyrics: "[00:01.00] from api",
	}}
	s := NewSource(WithFetcher(fetcher), WithCacheDir(cacheDir))

	res := s.Load(context.Background(), track)
	assert.Equal(t, OriginAPI, res.Source)
	assert.Equal(t, "Record", res.Lyrics.Album)

	_, err := os.Stat(s.cachePath("Band", "Song"))
	assert.NoError(t, err, "synced api result should be cached")

	again := s.Load(context.Background(), track)
	assert.Equal(t, OriginCache, again.Source)
	assert.Equal(t, 1, fetcher.calls)
}

func TestSource_LoadAPIPlainFiltersTags(t *testing.T) {
	track := audioTrack(t)
	fetcher := &fakeFetcher{result: &lrclib.LyricsResult{
		PlainLyrics: "[verse:1]\nfirst\nsecond",
	}}

	res := NewSource(WithFetcher(fetcher)).Load(context.Background(), track)
	assert.Equal(t, OriginAPI, res.Source)
	assert.Equal(t, []string{"first", "second"}, texts(res.Lyrics.Lines))
	assert.False(t, res.Lyrics.IsSynced())
}

func TestSource_LoadFallsBackToPlainText(t *testing.T) {
	track := audioTrack(t)
	s := NewSource(
		WithDrafts(&fakeDrafts{plain: "[note:ignored]\nline one\n\nline two"}),
		WithTags(&fakeTags{readErr: errors.New("no tag")}, false),
		WithFetcher(&fakeFetcher{err: lrclib.ErrNotFound}),
	)

	res := s.Load(context.Background(), track)
	assert.Equal(t, OriginPlain, res.Source)
	assert.Equal(t, []string{"line one", "line two"}, texts(res.Lyrics.Lines))
}

func TestSource_LoadEmbeddedPlainUsedWhenNoDraftText(t *testing.T) {
	track := audioTrack(t)
	s := NewSource(WithTags(&fakeTags{text: "unsynced words"}, false))

	res := s.Load(context.Background(), track)
	assert.Equal(t, OriginPlain, res.Source)
	assert.Equal(t, []string{"unsynced words"}, texts(res.Lyrics.Lines))
}

func TestSource_LoadSurvivesFailures(t *testing.T) {
	track := audioTrack(t)
	s := NewSource(
		WithDrafts(&fakeDrafts{err: errors.New("db locked")}),
		WithFetcher(&fakeFetcher{err: errors.New("network down")}),
	)

	res := s.Load(context.Background(), track)
	assert.Equal(t, OriginNone, res.Source)
	require.NotNil(t, res.Lyrics)
	assert.Empty(t, res.Lyrics.Lines)
}

func TestSource_Save(t *testing.T) {
	track := audioTrack(t)
	drafts := &fakeDrafts{}
	tags := &fakeTags{}
	s := NewSource(WithDrafts(drafts), WithTags(tags, true), WithLRCFile(true))

	lines := []Line{NewTimedLine(time.Second, "a"), NewLine(""), NewLine("b")}
	require.NoError(t, s.Save(context.Background(), track, lines))

	want := "[00:01.00] a\nb\n"
	assert.Equal(t, want, drafts.saved[track.FilePath])
	assert.Equal(t, want, tags.written)

	data, err := os.ReadFile(track.LRCPath())
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestSource_SaveLRCTrackAlwaysWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.lrc")
	tags := &fakeTags{}
	s := NewSource(WithTags(tags, true))

	require.NoError(t, s.Save(context.Background(), TrackInfo{FilePath: path}, []Line{NewLine("x")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
	assert.Empty(t, tags.written, "an .lrc track has no tags to embed into")
}

func TestSource_SaveFailureIsWrapped(t *testing.T) {
	track := audioTrack(t)
	s := NewSource(
		WithDrafts(&fakeDrafts{saveErr: errors.New("disk full")}),
		WithTags(&fakeTags{writeErr: errors.New("read-only")}, true),
	)

	err := s.Save(context.Background(), track, []Line{NewLine("a")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSave)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "read-only")
}

func TestSource_SaveWithoutTargets(t *testing.T) {
	err := NewSource().Save(context.Background(), TrackInfo{}, nil)
	assert.ErrorIs(t, err, ErrSave)
}

func TestTrackInfo_LRCPath(t *testing.T) {
	assert.Equal(t, "/m/a.lrc", TrackInfo{FilePath: "/m/a.flac"}.LRCPath())
	assert.Equal(t, "/m/a.LRC", TrackInfo{FilePath: "/m/a.LRC"}.LRCPath())
	assert.Empty(t, TrackInfo{}.LRCPath())
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AC/DC", "AC_DC"},
		{"  .hidden. ", "hidden"},
		{"", "_"},
		{`a:b*c?`, "a_b_c_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "sanitizeFilename(%q)", tt.in)
	}
}
