package countdown

import (
	"context"
	"errors"
	"time"

	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

// loop edits the display message until the clock runs out (Completed) or
// the countdown is paused, stopped or superseded (Aborted). A non-nil
// error means ctx ended the loop.
func (e *Engine) loop(ctx context.Context, channelID string, entry Entry) (ExitReason, error) {
	c := entry.Clock

	for {
		remaining := c.Remaining()
		if remaining <= 0 {
			break
		}

		// Edit latency is measured from here, not from the previous wait
		c.Mark()
		edit := e.update(ctx, channelID, entry, wholeSeconds(remaining))

		elapsed := c.SampleDelta().Round(latencyPrecision)
		wait := NextWait(elapsed, e.config.MinEditInterval)
		edit.Latency = elapsed
		edit.Wait = wait
		e.emitEdit(entry, channelID, edit)

		if err := e.sleep(ctx, wait); err != nil {
			return Aborted, err
		}

		if elapsed > e.config.LagThreshold {
			e.reportLag(entry, channelID, elapsed)
		}

		if e.registry.shouldExit(channelID, c) {
			return Aborted, nil
		}
	}

	edit := e.update(ctx, channelID, entry, 0)
	edit.Final = true
	e.emitEdit(entry, channelID, edit)
	return Completed, nil
}

// update renders seconds into the display message. An unchanged display is
// not re-sent. A message deleted by someone else is replaced as long as the
// countdown is still registered.
func (e *Engine) update(ctx context.Context, channelID string, entry Entry, seconds int) *log.EditEvent {
	edit := &log.EditEvent{Seconds: seconds}

	msg, ok := e.registry.message(channelID, entry.Clock)
	if !ok {
		edit.Skipped = true
		return edit
	}

	text := e.renderer.Render(seconds)
	if msg.Content == text {
		edit.Skipped = true
		return edit
	}

	err := e.messenger.Edit(ctx, msg, text)
	switch {
	case err == nil:
		msg.Content = text

	case errors.Is(err, ErrMessageNotFound):
		if !e.registry.live(channelID, entry.Clock) {
			return edit
		}
		replacement, err := e.messenger.Send(ctx, channelID, text)
		if err != nil {
			e.logger.Warn("re-sending countdown message failed", "channel_id", channelID, "error", err)
			e.emitError(entry.RunID, channelID, msg.ID, "send", err)
			return edit
		}
		replacement.Content = text
		if !e.registry.replaceMessage(channelID, entry.Clock, replacement) {
			// Stopped while re-sending
			e.deleteNow(ctx, Entry{Message: replacement}, "stopped during re-send")
			return edit
		}
		e.logger.Info("countdown message was deleted, sent a new one",
			"channel_id", channelID, "run_id", entry.RunID, "message_id", replacement.ID)
		edit.Resent = true

	default:
		e.logger.Warn("editing countdown message failed", "channel_id", channelID, "message_id", msg.ID, "error", err)
		e.emitError(entry.RunID, channelID, msg.ID, "edit", err)
	}
	return edit
}

// reportLag emits the slow-edit diagnostic. It never affects the loop.
func (e *Engine) reportLag(entry Entry, channelID string, elapsed time.Duration) {
	e.logger.Warn("editing countdown message is lagging",
		"channel_id", channelID,
		"run_id", entry.RunID,
		"elapsed", elapsed,
		"threshold", e.config.LagThreshold,
	)
	e.emit(log.Event{
		RunID:     entry.RunID,
		ChannelID: channelID,
		Category:  log.CategoryLag,
		Lag:       &log.LagEvent{Elapsed: elapsed, Threshold: e.config.LagThreshold},
	})
}

func (e *Engine) emitEdit(entry Entry, channelID string, edit *log.EditEvent) {
	event := log.Event{
		RunID:     entry.RunID,
		ChannelID: channelID,
		Category:  log.CategoryEdit,
		Edit:      edit,
	}
	if msg, ok := e.registry.message(channelID, entry.Clock); ok {
		event.MessageID = msg.ID
	}
	e.emit(event)
}

// wholeSeconds floors a non-negative duration to whole seconds.
func wholeSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}
