// Package clock implements the countdown primitive used by emoji timers.
//
// A Countdown does not decrement a counter per tick. Remaining time is
// recomputed from wall-clock samples on every read:
//
//	remaining = requested - (now - startedAt)
//
// so slow or irregular ticks never make a countdown run long.
//
// # Stop and Resume
//
// Stop freezes the remaining time into a snapshot. Resume re-bases the
// countdown: the frozen snapshot becomes the new requested duration and
// startedAt is reset to now, so time spent stopped is never counted.
//
// # Edit Latency
//
// SampleDelta measures the time since the previous sample (or Mark). It is
// used to measure how long a display update took and has no effect on the
// remaining time.
//
// # Time Sources
//
// All time reads go through a Source. Real uses the system clock; Mock is a
// manually advanced clock for deterministic tests.
package clock
