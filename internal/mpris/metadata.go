// Package mpris reads the playback position and current track of a media
// player over the MPRIS D-Bus interface.
package mpris

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	busPrefix       = "org.mpris.MediaPlayer2."
	objectPath      = "/org/mpris/MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
)

// ErrNoPlayer is returned when no MPRIS player is on the session bus.
var ErrNoPlayer = errors.New("no MPRIS player found")

// Metadata is the subset of the MPRIS track metadata lyrics need.
type Metadata struct {
	Title  string
	Artist string
	Album  string
	Length time.Duration
	Path   string // local file path when the player reports a file:// URL
}

// parseMetadata converts an MPRIS Metadata property.
func parseMetadata(m map[string]dbus.Variant) Metadata {
	var md Metadata
	md.Title, _ = m["xesam:title"].Value().(string)
	md.Album, _ = m["xesam:album"].Value().(string)

	switch v := m["xesam:artist"].Value().(type) {
	case []string:
		md.Artist = strings.Join(v, ", ")
	case string:
		md.Artist = v
	}

	// Players disagree on the integer type.
	switch v := m["mpris:length"].Value().(type) {
	case int64:
		md.Length = time.Duration(v) * time.Microsecond
	case uint64:
		md.Length = time.Duration(v) * time.Microsecond //nolint:gosec // track lengths fit
	case int32:
		md.Length = time.Duration(v) * time.Microsecond
	}

	if raw, ok := m["xesam:url"].Value().(string); ok {
		if u, err := url.Parse(raw); err == nil && u.Scheme == "file" {
			md.Path = u.Path
		}
	}
	return md
}

// pickPlayer returns the MPRIS bus name to use among names. With an
// empty match the first player in sorted order wins; otherwise the
// player whose name after the prefix starts with match.
func pickPlayer(names []string, match string) string {
	var players []string
	for _, n := range names {
		if strings.HasPrefix(n, busPrefix) {
			players = append(players, n)
		}
	}
	slices.Sort(players)

	for _, p := range players {
		if match == "" || strings.HasPrefix(strings.TrimPrefix(p, busPrefix), match) {
			return p
		}
	}
	return ""
}
