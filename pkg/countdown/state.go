package countdown

import (
	"errors"
	"fmt"
	"time"
)

// Countdown errors.
var (
	ErrTimerNotFound = errors.New("timer not found")
	ErrNotPaused     = errors.New("timer is not paused")
	ErrInvalidConfig = errors.New("invalid countdown config")
)

// Config defaults.
const (
	DefaultMinutes         = 60
	DefaultMinEditInterval = 300 * time.Millisecond
	DefaultFinishDelay     = 3 * time.Second
	DefaultLagThreshold    = 2 * time.Second

	// latencyPrecision is the rounding applied to measured edit latency.
	latencyPrecision = 10 * time.Millisecond
)

// State is the lifecycle state of a channel's countdown.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFinished
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateFinished:
		return "FINISHED"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// ExitReason tells why a render loop returned.
type ExitReason uint8

const (
	// Completed means the countdown reached zero and was finished.
	Completed ExitReason = iota + 1

	// Aborted means the loop observed a pause or stop, was superseded, or
	// its context ended.
	Aborted

	// Attached is returned by Resume when the paused loop had not yet
	// observed the pause and carries on by itself.
	Attached
)

// String returns a human-readable exit reason.
func (r ExitReason) String() string {
	switch r {
	case Completed:
		return "COMPLETED"
	case Aborted:
		return "ABORTED"
	case Attached:
		return "ATTACHED"
	default:
		return "UNKNOWN"
	}
}

// Config holds render loop timing.
type Config struct {
	// DefaultMinutes is used when a countdown is requested without minutes.
	DefaultMinutes int

	// MinEditInterval is the shortest wait between two edits.
	MinEditInterval time.Duration

	// FinishDelay is how long the zero display stays before deletion.
	FinishDelay time.Duration

	// LagThreshold is the edit latency above which a lag warning is logged.
	LagThreshold time.Duration
}

// DefaultConfig returns the default render loop timing.
func DefaultConfig() Config {
	return Config{
		DefaultMinutes:  DefaultMinutes,
		MinEditInterval: DefaultMinEditInterval,
		FinishDelay:     DefaultFinishDelay,
		LagThreshold:    DefaultLagThreshold,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultMinutes == 0 {
		c.DefaultMinutes = d.DefaultMinutes
	}
	if c.MinEditInterval == 0 {
		c.MinEditInterval = d.MinEditInterval
	}
	if c.FinishDelay == 0 {
		c.FinishDelay = d.FinishDelay
	}
	if c.LagThreshold == 0 {
		c.LagThreshold = d.LagThreshold
	}
	return c
}

// Validate checks that all fields are usable.
func (c Config) Validate() error {
	switch {
	case c.DefaultMinutes <= 0:
		return fmt.Errorf("%w: default minutes must be positive, got %d", ErrInvalidConfig, c.DefaultMinutes)
	case c.MinEditInterval <= 0:
		return fmt.Errorf("%w: min edit interval must be positive, got %v", ErrInvalidConfig, c.MinEditInterval)
	case c.FinishDelay < 0:
		return fmt.Errorf("%w: finish delay must not be negative, got %v", ErrInvalidConfig, c.FinishDelay)
	case c.LagThreshold <= 0:
		return fmt.Errorf("%w: lag threshold must be positive, got %v", ErrInvalidConfig, c.LagThreshold)
	}
	return nil
}

// NextWait returns how long to wait after an edit that took elapsed.
// The result realigns edits to whole seconds and is never below minInterval.
func NextWait(elapsed, minInterval time.Duration) time.Duration {
	if elapsed < 0 {
		elapsed = 0
	}
	wait := time.Second - elapsed%time.Second
	if wait < minInterval {
		wait = minInterval
	}
	return wait
}
