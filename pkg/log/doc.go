// Package log provides structured event capture for emoji countdowns.
//
// This package defines the Logger interface and Event types for recording
// what a countdown did: state transitions, every display edit with its
// latency and chosen wait, lag diagnostics and errors. It is separate from
// operational logging (slog). Event capture is a machine-readable trace for
// debugging rate-limit behaviour after the fact.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	engine.SetEventLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/emojitimer/events.tlog")
//	engine.SetEventLogger(fl)
//
//	// Both: use MultiLogger
//	engine.SetEventLogger(log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl))
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys and use
// the .tlog extension. The emojitimer-log CLI views and summarizes them.
package log
