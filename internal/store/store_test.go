package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/lrcsync/internal/lyrics"
)

var _ lyrics.DraftStore = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	r, err := s.Get(context.Background(), "/music/none.mp3")
	require.NoError(t, err)
	assert.Nil(t, r)

	lrc, plain, err := s.Draft(context.Background(), "/music/none.mp3")
	require.NoError(t, err)
	assert.Empty(t, lrc)
	assert.Empty(t, plain)
}

func TestStore_SaveLRCAndPlainAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	const path = "/music/a.flac"

	require.NoError(t, s.SavePlain(ctx, path, "plain words"))
	require.NoError(t, s.SaveLRC(ctx, path, "[00:01.00] words"))

	r, err := s.Get(ctx, path)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "[00:01.00] words", r.LRC)
	assert.Equal(t, "plain words", r.Text)

	require.NoError(t, s.SaveLRC(ctx, path, "[00:02.00] again"))
	lrc, plain, err := s.Draft(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "[00:02.00] again", lrc)
	assert.Equal(t, "plain words", plain)
}

func TestStore_SaveDraftStampsTime(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.SaveDraft(context.Background(), "/a.mp3", "x"))

	r, err := s.Get(context.Background(), "/a.mp3")
	require.NoError(t, err)
	assert.True(t, r.UpdatedAt.Equal(fixed))
}

func TestStore_ListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	clock := time.Unix(1000, 0)
	s.now = func() time.Time { return clock }
	require.NoError(t, s.SaveLRC(ctx, "/old.mp3", "old"))
	clock = time.Unix(2000, 0)
	require.NoError(t, s.SaveLRC(ctx, "/new.mp3", "new"))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "/new.mp3", records[0].Path)
	assert.Equal(t, "/old.mp3", records[1].Path)

	require.NoError(t, s.Delete(ctx, "/new.mp3"))
	records, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/old.mp3", records[0].Path)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveLRC(ctx, "/a.mp3", "[00:01.00] a"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	lrc, _, err := s.Draft(ctx, "/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "[00:01.00] a", lrc)
}

func TestStore_WithSource(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	track := lyrics.TrackInfo{FilePath: "/music/song.mp3"}

	src := lyrics.NewSource(lyrics.WithDrafts(s))
	lines := []lyrics.Line{lyrics.NewTimedLine(2*time.Second, "hi")}
	require.NoError(t, src.Save(ctx, track, lines))

	res := src.Load(ctx, track)
	assert.Equal(t, lyrics.OriginDraft, res.Source)
	require.Len(t, res.Lyrics.Lines, 1)
	assert.Equal(t, "hi", res.Lyrics.Lines[0].Text)
	assert.Equal(t, 2*time.Second, res.Lyrics.Lines[0].Time)
}
