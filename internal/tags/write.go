package tags

import (
	"fmt"
	"os"

	"go.senan.xyz/taglib"
)

// WriteLyrics replaces the lyrics embedded in a music file. Other tags are
// left untouched. An empty text removes the lyrics.
func WriteLyrics(path, text string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	switch ext(path) {
	case ExtMP3:
		return writeMP3Lyrics(path, text)
	case ExtFLAC:
		return writeFLACLyrics(path, text)
	case ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return writeTaglibLyrics(path, text)
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, ext(path))
}

// writeTaglibLyrics writes lyrics to Ogg and MP4 containers using TagLib.
func writeTaglibLyrics(path, text string) error {
	values := []string{text}
	if text == "" {
		values = nil
	}
	// Without the Clear option only the given key is replaced.
	if err := taglib.WriteTags(path, map[string][]string{lyricsKey: values}, 0); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}
