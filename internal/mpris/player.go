//go:build linux

package mpris

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	log "github.com/sirupsen/logrus"

	"github.com/llehouerou/lrcsync/internal/playback"
)

// Player is a remote MPRIS media player. It implements playback.Clock.
type Player struct {
	conn *dbus.Conn
	obj  dbus.BusObject
	name string
}

// Connect finds a player on the session bus. match selects a player by
// the start of its bus name suffix ("spotify", "mpv"); empty takes the
// first one.
func Connect(match string) (*Player, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}

	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		conn.Close()
		return nil, fmt.Errorf("list bus names: %w", err)
	}

	name := pickPlayer(names, match)
	if name == "" {
		conn.Close()
		return nil, ErrNoPlayer
	}
	log.WithField("player", name).Debug("mpris: connected")

	return &Player{
		conn: conn,
		obj:  conn.Object(name, objectPath),
		name: name,
	}, nil
}

// Name returns the player's bus name.
func (p *Player) Name() string { return p.name }

// Position returns the player's current position.
func (p *Player) Position() (time.Duration, error) {
	v, err := p.obj.GetProperty(playerInterface + ".Position")
	if err != nil {
		return 0, err
	}
	us, ok := v.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("mpris: unexpected position type %s", v.Signature())
	}
	return time.Duration(us) * time.Microsecond, nil
}

// State returns the player's playback status. Errors read as stopped.
func (p *Player) State() playback.State {
	v, err := p.obj.GetProperty(playerInterface + ".PlaybackStatus")
	if err != nil {
		return playback.StateStopped
	}
	status, _ := v.Value().(string)
	return playback.ParseState(status)
}

// PlayPause toggles playback.
func (p *Player) PlayPause() error {
	return p.obj.Call(playerInterface+".PlayPause", 0).Err
}

// Seek moves the position by offset.
func (p *Player) Seek(offset time.Duration) error {
	return p.obj.Call(playerInterface+".Seek", 0, offset.Microseconds()).Err
}

// Metadata returns the current track.
func (p *Player) Metadata() (Metadata, error) {
	v, err := p.obj.GetProperty(playerInterface + ".Metadata")
	if err != nil {
		return Metadata{}, err
	}
	m, ok := v.Value().(map[string]dbus.Variant)
	if !ok {
		return Metadata{}, fmt.Errorf("mpris: unexpected metadata type %s", v.Signature())
	}
	return parseMetadata(m), nil
}

// Close releases the bus connection.
func (p *Player) Close() error {
	return p.conn.Close()
}
