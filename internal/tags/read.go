package tags

import (
	"os"
	"path/filepath"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	log "github.com/sirupsen/logrus"
	"go.senan.xyz/taglib"
)

// Read reads title, artist, album and duration from a music file.
func Read(path string) (*Info, error) {
	info, err := readWithDhowden(path)
	if err != nil {
		switch ext(path) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			info, err = readMP3WithID3v2(path)
		case ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
			info, err = readWithTaglib(path)
		}
		if err != nil {
			return nil, err
		}
	}

	if info.Title == "" {
		info.Title = filepath.Base(path)
	}

	props, err := taglib.ReadProperties(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Debug("tags: no audio properties")
	} else {
		info.Duration = props.Length
	}
	return info, nil
}

func readWithDhowden(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return &Info{
		Path:   path,
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}, nil
}

// readMP3WithID3v2 reads MP3 metadata using only the id3v2 library.
func readMP3WithID3v2(path string) (*Info, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	return &Info{
		Path:   path,
		Title:  id3tag.Title(),
		Artist: id3tag.Artist(),
		Album:  id3tag.Album(),
	}, nil
}

func readWithTaglib(path string) (*Info, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(raw)
	return &Info{
		Path:   path,
		Title:  tags.get(taglib.Title),
		Artist: tags.get(taglib.Artist, taglib.AlbumArtist),
		Album:  tags.get(taglib.Album),
	}, nil
}
