package lyrics

import (
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ParseOptions controls how bracketed tags are treated.
type ParseOptions struct {
	// FilterMetadata drops unrecognized [tag:value] lines as well. Use it for
	// freeform pasted text; leave it off for real .lrc files so unknown tags
	// survive as plain lines.
	FilterMetadata bool
}

// Regular expressions for parsing LRC format
var (
	// Matches timestamps like [00:12.34], [00:12:345], [00:12] or [100:01.00]
	timestampRe = regexp.MustCompile(`\[(\d+):(\d{2})(?:[.:](\d{1,3}))?\]`)

	// Matches metadata tags like [ar:Artist Name]
	metadataRe = regexp.MustCompile(`^\[([a-zA-Z]+):(.*)\]$`)

	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// knownTags are always dropped from the timeline.
var knownTags = map[string]bool{
	"ti":     true,
	"ar":     true,
	"al":     true,
	"by":     true,
	"offset": true,
	"re":     true,
	"ve":     true,
	"length": true,
}

// ParseLRC parses LRC format lyrics from a reader.
func ParseLRC(r io.Reader, opts ParseOptions) (*Lyrics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), opts), nil
}

// Parse parses LRC text or plain lyrics into a sorted timeline. Lines
// without a timestamp are kept untimed after all timed lines.
func Parse(text string, opts ParseOptions) *Lyrics {
	lyrics := &Lyrics{Lines: []Line{}}

	for raw := range strings.SplitSeq(lineEndings.Replace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if meta := metadataRe.FindStringSubmatch(line); meta != nil {
			tag := strings.ToLower(meta[1])
			if knownTags[tag] {
				lyrics.setMetadata(tag, strings.TrimSpace(meta[2]))
				continue
			}
			if opts.FilterMetadata {
				continue
			}
		}

		lyrics.Lines = append(lyrics.Lines, parseLine(line)...)
	}

	sortTimeline(lyrics.Lines)
	return lyrics
}

// parseLine expands one physical line into zero or more timeline lines.
// LRC can have multiple timestamps for the same text: [00:12.34][00:45.67]Text
func parseLine(line string) []Line {
	matches := timestampRe.FindAllStringSubmatch(line, -1)

	var valid []Line
	for _, m := range matches {
		ts, err := DecodeTimestamp(m[1], m[2], m[3])
		if err != nil {
			log.WithField("token", m[0]).Debug("lyrics: skipping malformed timestamp")
			continue
		}
		valid = append(valid, Line{Time: ts, Timed: true})
	}

	if len(valid) == 0 {
		return []Line{NewLine(line)}
	}

	text := strings.TrimSpace(timestampRe.ReplaceAllString(line, ""))
	if text == "" {
		return nil
	}
	for i := range valid {
		valid[i].ID = uuid.NewString()
		valid[i].Text = text
	}
	return valid
}

func (l *Lyrics) setMetadata(tag, value string) {
	switch tag {
	case "ar":
		l.Artist = value
	case "ti":
		l.Title = value
	case "al":
		l.Album = value
	case "by":
		l.By = value
	}
}

// sortTimeline orders timed lines ascending with untimed lines last,
// preserving input order among equal keys.
func sortTimeline(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Timed != b.Timed {
			return a.Timed
		}
		return a.Timed && a.Time < b.Time
	})
}

// looksLikeLRC reports whether text carries at least one valid timestamp.
func looksLikeLRC(text string) bool {
	for _, m := range timestampRe.FindAllStringSubmatch(text, -1) {
		if _, err := DecodeTimestamp(m[1], m[2], m[3]); err == nil {
			return true
		}
	}
	return false
}
