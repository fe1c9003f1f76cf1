package countdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/emoji-timer/emojitimer-go/pkg/clock"
	"github.com/emoji-timer/emojitimer-go/pkg/glyph"
	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Status describes a channel's countdown.
type Status struct {
	RunID     string
	State     State
	Remaining time.Duration
	MessageID string
}

// Engine runs countdowns, one per channel.
type Engine struct {
	config    Config
	messenger Messenger
	renderer  *glyph.Renderer
	registry  *Registry

	src   clock.Source
	sleep SleepFunc

	logger *slog.Logger
	events log.Logger
}

// NewEngine creates an engine. Zero config fields take their defaults.
func NewEngine(messenger Messenger, renderer *glyph.Renderer, config Config) (*Engine, error) {
	if messenger == nil {
		return nil, fmt.Errorf("%w: messenger is required", ErrInvalidConfig)
	}
	if renderer == nil {
		return nil, fmt.Errorf("%w: renderer is required", ErrInvalidConfig)
	}

	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config:    config,
		messenger: messenger,
		renderer:  renderer,
		registry:  NewRegistry(),
		src:       clock.Real(),
		sleep:     clock.Sleep,
		logger:    slog.Default(),
		events:    log.NoopLogger{},
	}, nil
}

// SetTimeSource replaces the time source and the wait between edits.
// Must be called before the first countdown starts.
func (e *Engine) SetTimeSource(src clock.Source, sleep SleepFunc) {
	e.src = src
	e.sleep = sleep
}

// SetLogger sets the operational logger.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l != nil {
		e.logger = l
	}
}

// SetEventLogger sets the event capture logger.
func (e *Engine) SetEventLogger(l log.Logger) {
	if l != nil {
		e.events = l
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Active reports whether the channel has a countdown, running or paused.
func (e *Engine) Active(channelID string) bool {
	_, ok := e.registry.Get(channelID)
	return ok
}

// Channels returns the channels with a countdown.
func (e *Engine) Channels() []string {
	return e.registry.Channels()
}

// Status returns the channel's countdown status.
func (e *Engine) Status(channelID string) (Status, bool) {
	entry, ok := e.registry.Get(channelID)
	if !ok {
		return Status{State: StateIdle}, false
	}

	st := Status{
		RunID:     entry.RunID,
		State:     StateRunning,
		Remaining: entry.Clock.Remaining(),
	}
	if entry.Clock.Stopped() {
		st.State = StatePaused
	}
	if st.Remaining < 0 {
		st.Remaining = 0
	}
	if entry.Message != nil {
		st.MessageID = entry.Message.ID
	}
	return st, true
}

// Countdown runs a countdown of the given minutes in the channel and blocks
// until it ends. Zero or negative minutes use Config.DefaultMinutes.
func (e *Engine) Countdown(ctx context.Context, channelID string, minutes int) (ExitReason, error) {
	if minutes <= 0 {
		minutes = e.config.DefaultMinutes
	}
	return e.Start(ctx, channelID, time.Duration(minutes)*time.Minute)
}

// Start runs a countdown of d in the channel and blocks until it ends.
// A countdown already running in the channel is superseded: its clock is
// stopped and its message deleted.
func (e *Engine) Start(ctx context.Context, channelID string, d time.Duration) (ExitReason, error) {
	c, err := clock.NewCountdown(e.src, d)
	if err != nil {
		return Aborted, err
	}
	runID := uuid.NewString()

	text := e.renderer.Render(wholeSeconds(d))
	msg, err := e.messenger.Send(ctx, channelID, text)
	if err != nil {
		e.emitError(runID, channelID, "", "send", err)
		return Aborted, fmt.Errorf("send display message: %w", err)
	}
	msg.Content = text

	entry := Entry{RunID: runID, Clock: c, Message: msg}
	if prev, replaced := e.registry.Add(channelID, entry); replaced {
		prev.Clock.Stop()
		e.deleteNow(ctx, prev, "superseded")
	}

	e.logger.Info("countdown started", "channel_id", channelID, "run_id", runID, "duration", d)
	e.emitState(entry, channelID, StateIdle, StateRunning, "start")

	return e.drive(ctx, channelID, entry)
}

// Stop ends the channel's countdown and deletes its message immediately.
func (e *Engine) Stop(ctx context.Context, channelID string) error {
	entry, ok := e.registry.Remove(channelID)
	if !ok {
		return ErrTimerNotFound
	}
	from := StateRunning
	if entry.Clock.Stopped() {
		from = StatePaused
	}
	entry.Clock.Stop()

	e.logger.Info("countdown stopped", "channel_id", channelID, "run_id", entry.RunID)
	e.emitState(entry, channelID, from, StateStopped, "stop")
	e.deleteNow(ctx, entry, "stop")
	return nil
}

// Pause freezes the channel's countdown. The render loop exits at its next
// check; the message and registry entry are kept. Pausing a paused
// countdown is a no-op.
func (e *Engine) Pause(channelID string) error {
	entry, ok := e.registry.Get(channelID)
	if !ok {
		return ErrTimerNotFound
	}
	if entry.Clock.Stopped() {
		return nil
	}
	entry.Clock.Stop()

	e.logger.Info("countdown paused", "channel_id", channelID, "run_id", entry.RunID)
	e.emitState(entry, channelID, StateRunning, StatePaused, "pause")
	return nil
}

// Resume continues a paused countdown on the same message and blocks until
// the render loop ends. It returns ErrTimerNotFound or ErrNotPaused
// without changing any state.
func (e *Engine) Resume(ctx context.Context, channelID string) (ExitReason, error) {
	entry, startLoop, err := e.registry.resume(channelID)
	if err != nil {
		return Aborted, err
	}

	e.logger.Info("countdown resumed", "channel_id", channelID, "run_id", entry.RunID)
	e.emitState(entry, channelID, StatePaused, StateRunning, "resume")

	if !startLoop {
		return Attached, nil
	}
	return e.drive(ctx, channelID, entry)
}

// drive runs the render loop and finishes the countdown on completion.
func (e *Engine) drive(ctx context.Context, channelID string, entry Entry) (ExitReason, error) {
	reason, err := e.loop(ctx, channelID, entry)
	if err != nil {
		e.registry.release(channelID, entry.Clock)
		return Aborted, err
	}
	if reason == Completed && !e.finish(ctx, channelID, entry) {
		// Stopped or superseded during the final edit
		return Aborted, nil
	}
	return reason, nil
}

// finish schedules deletion of the display message and clears the entry.
// It reports false if the entry was already gone.
func (e *Engine) finish(ctx context.Context, channelID string, entry Entry) bool {
	removed, ok := e.registry.removeEntry(channelID, entry.Clock)
	if !ok {
		return false
	}

	if err := e.messenger.Delete(ctx, removed.Message, e.config.FinishDelay); err != nil {
		e.logger.Debug("deleting finished countdown failed", "channel_id", channelID, "error", err)
	}

	e.logger.Info("countdown finished", "channel_id", channelID, "run_id", entry.RunID)
	e.emitState(removed, channelID, StateRunning, StateFinished, "")
	return true
}

// deleteNow removes a countdown's message without delay, best-effort.
func (e *Engine) deleteNow(ctx context.Context, entry Entry, reason string) {
	if entry.Message == nil {
		return
	}
	err := e.messenger.Delete(ctx, entry.Message, 0)
	if err != nil && !errors.Is(err, ErrMessageNotFound) {
		e.logger.Debug("deleting countdown message failed", "reason", reason, "message_id", entry.Message.ID, "error", err)
	}
}

func (e *Engine) emit(event log.Event) {
	event.Timestamp = e.src.Now()
	e.events.Log(event)
}

func (e *Engine) emitState(entry Entry, channelID string, from, to State, reason string) {
	event := log.Event{
		RunID:     entry.RunID,
		ChannelID: channelID,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState:  from.String(),
			NewState:  to.String(),
			Reason:    reason,
			Remaining: entry.Clock.Remaining(),
		},
	}
	if entry.Message != nil {
		event.MessageID = entry.Message.ID
	}
	e.emit(event)
}

func (e *Engine) emitError(runID, channelID, messageID, op string, err error) {
	e.emit(log.Event{
		RunID:     runID,
		ChannelID: channelID,
		Category:  log.CategoryError,
		MessageID: messageID,
		Error:     &log.ErrorEventData{Op: op, Message: err.Error()},
	})
}
