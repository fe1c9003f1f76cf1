package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("channel_id", event.ChannelID),
		slog.String("category", event.Category.String()),
	}
	if event.MessageID != "" {
		attrs = append(attrs, slog.String("message_id", event.MessageID))
	}

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
			slog.Duration("remaining", event.StateChange.Remaining),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Edit != nil:
		attrs = append(attrs,
			slog.Int("seconds", event.Edit.Seconds),
			slog.Duration("latency", event.Edit.Latency),
			slog.Duration("wait", event.Edit.Wait),
		)
		if event.Edit.Resent {
			attrs = append(attrs, slog.Bool("resent", true))
		}
		if event.Edit.Skipped {
			attrs = append(attrs, slog.Bool("skipped", true))
		}
		if event.Edit.Final {
			attrs = append(attrs, slog.Bool("final", true))
		}
	case event.Lag != nil:
		attrs = append(attrs,
			slog.Duration("elapsed", event.Lag.Elapsed),
			slog.Duration("threshold", event.Lag.Threshold),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("op", event.Error.Op),
			slog.String("error_msg", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "countdown", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
