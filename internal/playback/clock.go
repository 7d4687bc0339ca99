// Package playback provides the playback position the sync editor times
// lines against.
package playback

import "time"

// Clock reports and controls a playback position.
type Clock interface {
	// Position returns the current playback position.
	Position() (time.Duration, error)
	// State returns whether playback is running.
	State() State
	// PlayPause toggles between playing and paused.
	PlayPause() error
	// Seek moves the position by offset, which may be negative.
	Seek(offset time.Duration) error
}
