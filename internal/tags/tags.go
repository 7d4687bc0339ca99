// Package tags reads track metadata and reads or writes lyrics embedded in
// music files. MP3, FLAC, Opus/Ogg and M4A are supported.
package tags

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// lyricsKey is the Vorbis comment / taglib property holding lyrics.
const lyricsKey = "LYRICS"

// ErrUnsupported is returned for files whose format has no lyrics support.
var ErrUnsupported = errors.New("unsupported file format")

// Info is the track metadata needed to look lyrics up.
type Info struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// IsAudioFile returns true if the path has a supported music file extension.
func IsAudioFile(path string) bool {
	switch ext(path) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return true
	}
	return false
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// Files reads and writes lyrics in music files on disk.
type Files struct{}

func (Files) ReadLyrics(path string) (string, error) { return ReadLyrics(path) }

func (Files) WriteLyrics(path, text string) error { return WriteLyrics(path, text) }
