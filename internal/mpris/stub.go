//go:build !linux

package mpris

import (
	"time"

	"github.com/llehouerou/lrcsync/internal/playback"
)

// Player is unavailable on non-Linux platforms.
type Player struct{}

// Connect always fails on non-Linux platforms.
func Connect(_ string) (*Player, error) {
	return nil, ErrNoPlayer
}

func (p *Player) Name() string { return "" }

func (p *Player) Position() (time.Duration, error) { return 0, ErrNoPlayer }

func (p *Player) State() playback.State { return playback.StateStopped }

func (p *Player) PlayPause() error { return ErrNoPlayer }

func (p *Player) Seek(_ time.Duration) error { return ErrNoPlayer }

func (p *Player) Metadata() (Metadata, error) { return Metadata{}, ErrNoPlayer }

func (p *Player) Close() error { return nil }
