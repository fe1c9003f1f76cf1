// Package countdown drives emoji countdowns displayed in chat channels.
//
// A countdown is one message that is edited roughly once per second to
// show the remaining time as glyphs. The Engine owns one Registry entry
// per channel (a clock.Countdown plus the display Message) and runs the
// render loop that keeps the message current.
//
// # Render Loop
//
// Each iteration marks the current instant, renders the whole seconds left,
// edits the message and measures how long the edit took. The next edit is
// scheduled 1s minus the fractional part of that latency, but never sooner
// than Config.MinEditInterval:
//
//	wait = max(1s - (latency mod 1s), MinEditInterval)
//
// so edits stay aligned to whole seconds while respecting the platform's
// edit rate limit. Edits slower than Config.LagThreshold are reported.
//
// # Lifecycle
//
//	Idle -> Running <-> Paused -> Finished
//	Running -> Stopped
//
// Pause freezes the clock; the loop observes it after its current wait and
// exits as Aborted while keeping the registry entry. Resume restarts the
// clock and the loop on the same message. Stop removes the entry and deletes
// the message immediately. A natural finish renders zero, deletes the
// message after Config.FinishDelay and removes the entry.
//
// # Self-Healing
//
// If the display message was deleted by someone else, the next edit fails
// with ErrMessageNotFound and a replacement message is sent, unless the
// countdown was stopped in the meantime.
package countdown
