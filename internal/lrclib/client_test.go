package lrclib

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "lrcsync")
		gotQuery = map[string]string{
			"artist":   r.URL.Query().Get("artist_name"),
			"track":    r.URL.Query().Get("track_name"),
			"duration": r.URL.Query().Get("duration"),
		}
		_ = json.NewEncoder(w).Encode(LyricsResult{
			TrackName:    "Song",
			ArtistName:   "Band",
			SyncedLyrics: "[00:01.00] hello",
		})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second)
	res, err := c.Get(context.Background(), "Band", "Song", 183*time.Second)
	require.NoError(t, err)

	assert.Equal(t, "Band", gotQuery["artist"])
	assert.Equal(t, "Song", gotQuery["track"])
	assert.Equal(t, "183", gotQuery["duration"])
	assert.True(t, res.HasSyncedLyrics())
	assert.False(t, res.HasPlainLyrics())
}

func TestClient_GetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Get(context.Background(), "a", "b", 0)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_GetServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Get(context.Background(), "a", "b", 0)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "band song", r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode([]LyricsResult{
			{ID: 1, PlainLyrics: "one"},
			{ID: 2, PlainLyrics: "two"},
		})
	}))
	defer srv.Close()

	results, err := New(srv.URL, 0).Search(context.Background(), "band song")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[1].ID)
}

func TestNew_Defaults(t *testing.T) {
	c := New("", 0)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
}

func TestLyricsResult_WhitespaceIsEmpty(t *testing.T) {
	r := LyricsResult{SyncedLyrics: "  \n", PlainLyrics: "\t"}
	assert.False(t, r.HasSyncedLyrics())
	assert.False(t, r.HasPlainLyrics())
}
