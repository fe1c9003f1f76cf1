package log

import (
	"strings"
	"time"
)

// Event represents one captured countdown event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID uniquely identifies one countdown run (UUID). A paused and
	// resumed countdown keeps its run ID.
	RunID string `cbor:"2,keyasint"`

	// ChannelID is the chat channel the countdown is displayed in.
	ChannelID string `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// MessageID is the display message the event concerns, if any.
	MessageID string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Edit        *EditEvent        `cbor:"11,keyasint,omitempty"`
	Lag         *LagEvent         `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a countdown state change.
	CategoryState Category = 0
	// CategoryEdit indicates a display update.
	CategoryEdit Category = 1
	// CategoryLag indicates an edit slower than the lag threshold.
	CategoryLag Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryEdit:
		return "EDIT"
	case CategoryLag:
		return "LAG"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToUpper(s) {
	case "STATE":
		return CategoryState, true
	case "EDIT":
		return CategoryEdit, true
	case "LAG":
		return CategoryLag, true
	case "ERROR":
		return CategoryError, true
	default:
		return 0, false
	}
}

// StateChangeEvent captures a countdown lifecycle transition.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`

	// Remaining is the countdown's remaining time at the transition.
	// Stored as nanoseconds.
	Remaining time.Duration `cbor:"4,keyasint,omitempty"`
}

// EditEvent captures one display update.
type EditEvent struct {
	// Seconds is the whole-second value rendered.
	Seconds int `cbor:"1,keyasint"`

	// Latency is how long the edit took, rounded to 10ms.
	Latency time.Duration `cbor:"2,keyasint"`

	// Wait is the pause chosen before the next edit.
	Wait time.Duration `cbor:"3,keyasint,omitempty"`

	// Resent is set when the display message had vanished and was sent again.
	Resent bool `cbor:"4,keyasint,omitempty"`

	// Skipped is set when the content was unchanged and no edit was issued.
	Skipped bool `cbor:"5,keyasint,omitempty"`

	// Final is set for the closing edit that renders zero.
	Final bool `cbor:"6,keyasint,omitempty"`
}

// LagEvent captures an edit that took longer than the lag threshold.
type LagEvent struct {
	// Elapsed is how long the edit took.
	Elapsed time.Duration `cbor:"1,keyasint"`

	// Threshold is the configured lag threshold.
	Threshold time.Duration `cbor:"2,keyasint"`
}

// ErrorEventData captures a failed external operation.
type ErrorEventData struct {
	// Op is the operation being performed (send, edit, delete).
	Op string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`
}
