package tags

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"go.senan.xyz/taglib"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.flac", true},
		{"song.opus", true},
		{"song.ogg", true},
		{"song.OGA", true},
		{"song.m4a", true},
		{"song.mp4", true},
		{"song.lrc", false},
		{"song.wav", false},
		{"song", false},
		{"/path/to/music.flac", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsAudioFile(tt.path); got != tt.want {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// createTestMP3 creates a minimal MP3 file (MPEG1 Layer3, 128kbps, 44100Hz).
func createTestMP3(t *testing.T, title, artist string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mp3")

	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	if err := os.WriteFile(path, mp3Frame, 0o600); err != nil {
		t.Fatalf("failed to create test MP3: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open id3: %v", err)
	}
	tag.SetVersion(4)
	tag.SetTitle(title)
	tag.SetArtist(artist)
	tag.SetAlbum("Record")
	if err := tag.Save(); err != nil {
		t.Fatalf("save id3: %v", err)
	}
	tag.Close()
	return path
}

// createTestFLAC creates a one-second FLAC file using ffmpeg.
func createTestFLAC(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.flac")

	cmd := exec.Command("ffmpeg", "-y", "-f", "lavfi", "-i", "sine=frequency=440:duration=1", path)
	if err := cmd.Run(); err != nil {
		t.Skipf("ffmpeg not available: %v", err)
	}
	return path
}

func TestRead_MP3(t *testing.T) {
	path := createTestMP3(t, "Song", "Band")

	info, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if info.Title != "Song" || info.Artist != "Band" || info.Album != "Record" {
		t.Errorf("Read() = %+v, want Song/Band/Record", info)
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "none.mp3")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLyrics_MP3RoundTrip(t *testing.T) {
	path := createTestMP3(t, "Song", "Band")

	text, err := ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics() error: %v", err)
	}
	if text != "" {
		t.Errorf("ReadLyrics() = %q before writing, want empty", text)
	}

	want := "[00:01.00] first\n[00:02.50] second"
	if err := WriteLyrics(path, want); err != nil {
		t.Fatalf("WriteLyrics() error: %v", err)
	}
	// Overwrite must replace, not add a second frame.
	if err := WriteLyrics(path, want); err != nil {
		t.Fatalf("WriteLyrics() error: %v", err)
	}

	got, err := readMP3Lyrics(path)
	if err != nil {
		t.Fatalf("readMP3Lyrics() error: %v", err)
	}
	if got != want {
		t.Errorf("lyrics = %q, want %q", got, want)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open id3: %v", err)
	}
	defer tag.Close()
	if n := len(tag.GetFrames("USLT")); n != 1 {
		t.Errorf("USLT frames = %d, want 1", n)
	}
	if tag.Title() != "Song" {
		t.Errorf("Title = %q, other tags must survive", tag.Title())
	}
}

func TestLyrics_MP3Remove(t *testing.T) {
	path := createTestMP3(t, "Song", "Band")

	if err := WriteLyrics(path, "words"); err != nil {
		t.Fatalf("WriteLyrics() error: %v", err)
	}
	if err := WriteLyrics(path, ""); err != nil {
		t.Fatalf("WriteLyrics() error: %v", err)
	}
	got, err := ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics() error: %v", err)
	}
	if got != "" {
		t.Errorf("lyrics = %q after removal, want empty", got)
	}
}

func TestLyrics_FLACKeepsOtherComments(t *testing.T) {
	path := createTestFLAC(t)
	if err := taglib.WriteTags(path, map[string][]string{taglib.Title: {"Song"}}, 0); err != nil {
		t.Fatalf("WriteTags() error: %v", err)
	}

	want := "[00:01.00] hello"
	if err := WriteLyrics(path, want); err != nil {
		t.Fatalf("WriteLyrics() error: %v", err)
	}
	if err := WriteLyrics(path, want); err != nil {
		t.Fatalf("WriteLyrics() error: %v", err)
	}

	got, err := ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics() error: %v", err)
	}
	if got != want {
		t.Errorf("lyrics = %q, want %q", got, want)
	}

	raw, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags() error: %v", err)
	}
	if len(raw[lyricsKey]) != 1 {
		t.Errorf("LYRICS values = %v, want exactly one", raw[lyricsKey])
	}
	if taglibTags(raw).get(taglib.Title) != "Song" {
		t.Errorf("TITLE = %v, want it preserved", raw[taglib.Title])
	}
}

func TestLyrics_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadLyrics(path); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ReadLyrics() error = %v, want ErrUnsupported", err)
	}
	if err := WriteLyrics(path, "x"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("WriteLyrics() error = %v, want ErrUnsupported", err)
	}
}

func TestWriteLyrics_MissingFile(t *testing.T) {
	if err := WriteLyrics(filepath.Join(t.TempDir(), "none.mp3"), "x"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTaglibTags_Get(t *testing.T) {
	tags := taglibTags{"A": {"1", "2"}, "EMPTY": {}}

	if got := tags.get("MISSING", "A"); got != "1" {
		t.Errorf("get() = %q, want first value of first present key", got)
	}
	if got := tags.get("EMPTY"); got != "" {
		t.Errorf("get(EMPTY) = %q, want empty", got)
	}
}
