package playback

import (
	"sync"
	"time"
)

// Stopwatch is a wall-clock Clock for syncing without a media player on
// the bus. The position never goes below zero.
type Stopwatch struct {
	mu      sync.Mutex
	now     func() time.Time
	state   State
	base    time.Duration // position when last started or paused
	started time.Time     // wall time of the last start
}

// NewStopwatch returns a stopped stopwatch at position zero.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

func (s *Stopwatch) position() time.Duration {
	if s.state != StatePlaying {
		return s.base
	}
	return s.base + s.now().Sub(s.started)
}

// Position returns the elapsed playing time plus any seeks.
func (s *Stopwatch) Position() (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position(), nil
}

func (s *Stopwatch) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start resumes counting. Starting a running stopwatch does nothing.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePlaying {
		return
	}
	s.started = s.now()
	s.state = StatePlaying
}

// Pause freezes the position.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return
	}
	s.base = s.position()
	s.state = StatePaused
}

// PlayPause toggles between playing and paused.
func (s *Stopwatch) PlayPause() error {
	if s.State() == StatePlaying {
		s.Pause()
	} else {
		s.Start()
	}
	return nil
}

// Seek moves the position by offset, clamping at zero.
func (s *Stopwatch) Seek(offset time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPosition(s.position() + offset)
	return nil
}

// SetPosition jumps to an absolute position, clamping at zero.
func (s *Stopwatch) SetPosition(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPosition(pos)
}

func (s *Stopwatch) setPosition(pos time.Duration) {
	s.base = max(pos, 0)
	if s.state == StatePlaying {
		s.started = s.now()
	}
}

// Stop pauses and rewinds to zero.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = 0
	s.state = StateStopped
}
