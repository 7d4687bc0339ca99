package tags

import (
	"os"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// ReadLyrics returns the lyrics embedded in a music file, or "" when the
// file carries none.
func ReadLyrics(path string) (string, error) {
	if !IsAudioFile(path) {
		return "", ErrUnsupported
	}

	if text := readLyricsWithDhowden(path); strings.TrimSpace(text) != "" {
		return text, nil
	}

	switch ext(path) {
	case ExtMP3:
		return readMP3Lyrics(path)
	default:
		raw, err := taglib.ReadTags(path)
		if err != nil {
			return "", err
		}
		return taglibTags(raw).get(lyricsKey, "UNSYNCEDLYRICS"), nil
	}
}

func readLyricsWithDhowden(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return m.Lyrics()
}

// readMP3Lyrics reads the first USLT frame of an MP3 file.
func readMP3Lyrics(path string) (string, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", err
	}
	defer id3tag.Close()

	for _, frame := range id3tag.GetFrames(id3tag.CommonID("Unsynchronised lyrics/text transcription")) {
		if uslt, ok := frame.(id3v2.UnsynchronisedLyricsFrame); ok && uslt.Lyrics != "" {
			return uslt.Lyrics, nil
		}
	}
	return "", nil
}
