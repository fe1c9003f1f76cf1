package clock

import (
	"errors"
	"sync"
	"time"
)

// Countdown errors.
var (
	ErrInvalidState    = errors.New("countdown is not stopped")
	ErrInvalidDuration = errors.New("invalid countdown duration")
)

// Countdown tracks one in-progress or paused countdown.
//
// Remaining time is only stored while stopped; while running it is derived
// from the start time on every read.
type Countdown struct {
	mu sync.Mutex

	src Source

	// Duration the countdown runs for, counted from startedAt
	requested time.Duration

	// Frozen remaining time, authoritative only while stopped
	remaining time.Duration

	// Set on start and resume
	startedAt time.Time

	// Reference point for SampleDelta
	lastSampleAt time.Time

	stopped bool
}

// NewCountdown starts a countdown of duration d using src for time reads.
// A nil src uses real time.
func NewCountdown(src Source, d time.Duration) (*Countdown, error) {
	if src == nil {
		src = Real()
	}
	c := &Countdown{src: src}
	if err := c.Start(d); err != nil {
		return nil, err
	}
	return c, nil
}

// Start (re)initializes the countdown to run for d from now.
func (c *Countdown) Start(d time.Duration) error {
	if d < 0 {
		return ErrInvalidDuration
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.src.Now()
	c.requested = d
	c.remaining = d
	c.startedAt = now
	c.lastSampleAt = now
	c.stopped = false
	return nil
}

// Remaining returns the time left. While running it is computed fresh on
// each call and may be negative once the countdown has elapsed. While
// stopped it returns the frozen snapshot.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked()
}

func (c *Countdown) remainingLocked() time.Duration {
	if c.stopped {
		return c.remaining
	}
	c.remaining = c.requested - c.src.Now().Sub(c.startedAt)
	return c.remaining
}

// Requested returns the duration the countdown currently runs for.
func (c *Countdown) Requested() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requested
}

// SetRequested changes the duration counted from the current start point.
func (c *Countdown) SetRequested(d time.Duration) error {
	if d < 0 {
		return ErrInvalidDuration
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.requested = d
	return nil
}

// Mark sets the SampleDelta reference point to now.
func (c *Countdown) Mark() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSampleAt = c.src.Now()
}

// SampleDelta returns the time elapsed since the previous sample, Mark or
// start, and moves the reference point to now.
func (c *Countdown) SampleDelta() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.src.Now()
	delta := now.Sub(c.lastSampleAt)
	c.lastSampleAt = now
	return delta
}

// Stop freezes the remaining time. Calling Stop on a stopped countdown
// leaves the frozen value unchanged.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.remainingLocked()
	c.stopped = true
}

// Resume restarts a stopped countdown from its frozen remaining time.
// Returns ErrInvalidState if the countdown is running.
func (c *Countdown) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.stopped {
		return ErrInvalidState
	}

	c.requested = c.remaining
	c.startedAt = c.src.Now()
	c.stopped = false
	return nil
}

// Stopped reports whether the countdown is stopped.
func (c *Countdown) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
