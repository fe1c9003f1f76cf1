package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/emoji-timer/emojitimer-go/pkg/countdown"
)

// Notices shown to users. They are deleted after the notice TTL.
const (
	NoticeTimerNotFound  = "Timer not found!"
	NoticeNotPaused      = "No timer is paused!"
	NoticeAlreadyRunning = "A timer is already running!"
)

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 10 * time.Second

// Options configures a Router.
type Options struct {
	// Prefix marks a chat message as a command. Defaults to DefaultPrefix.
	Prefix string

	// NoticeTTL is how long notices stay visible. Defaults to DefaultNoticeTTL.
	NoticeTTL time.Duration

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Router dispatches chat commands to a countdown engine. Countdowns run in
// their own goroutines; at most one countdown is started per channel.
type Router struct {
	engine    *countdown.Engine
	messenger countdown.Messenger
	prefix    string
	noticeTTL time.Duration
	logger    *slog.Logger

	mu       sync.Mutex
	starting map[string]bool

	wg sync.WaitGroup
}

// NewRouter creates a router. Notices are sent through messenger, which is
// usually the engine's own.
func NewRouter(engine *countdown.Engine, messenger countdown.Messenger, opts Options) *Router {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = DefaultNoticeTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Router{
		engine:    engine,
		messenger: messenger,
		prefix:    opts.Prefix,
		noticeTTL: opts.NoticeTTL,
		logger:    opts.Logger,
		starting:  make(map[string]bool),
	}
}

// Prefix returns the command prefix.
func (r *Router) Prefix() string {
	return r.prefix
}

// Handle processes one chat message posted in channelID and reports whether
// it was a command. It does not block on running countdowns; ctx bounds the
// countdowns it starts.
func (r *Router) Handle(ctx context.Context, channelID, content string) bool {
	cmd, ok, err := Parse(r.prefix, content)
	if !ok {
		return false
	}
	if err != nil {
		r.notice(ctx, channelID, fmt.Sprintf("Usage: %scountdown [minutes]", r.prefix))
		return true
	}

	r.logger.Debug("command received", "channel_id", channelID, "command", cmd.Kind.String())

	switch cmd.Kind {
	case KindCountdown:
		r.countdown(ctx, channelID, cmd.Minutes)
	case KindStop:
		r.stop(ctx, channelID)
	case KindPause:
		r.pause(ctx, channelID)
	case KindResume:
		r.resume(ctx, channelID)
	case KindStatus:
		r.status(ctx, channelID)
	default:
		return false
	}
	return true
}

// Wait blocks until all countdown goroutines started by Handle returned.
func (r *Router) Wait() {
	r.wg.Wait()
}

func (r *Router) countdown(ctx context.Context, channelID string, minutes int) {
	r.mu.Lock()
	if r.starting[channelID] || r.engine.Active(channelID) {
		r.mu.Unlock()
		r.notice(ctx, channelID, NoticeAlreadyRunning)
		return
	}
	r.starting[channelID] = true
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			delete(r.starting, channelID)
			r.mu.Unlock()
		}()

		reason, err := r.engine.Countdown(ctx, channelID, minutes)
		r.logResult("countdown", channelID, reason, err)
	}()
}

func (r *Router) stop(ctx context.Context, channelID string) {
	if err := r.engine.Stop(ctx, channelID); err != nil {
		r.reportError(ctx, channelID, "stop", err)
	}
}

func (r *Router) pause(ctx context.Context, channelID string) {
	if err := r.engine.Pause(channelID); err != nil {
		r.reportError(ctx, channelID, "pause", err)
	}
}

func (r *Router) resume(ctx context.Context, channelID string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		reason, err := r.engine.Resume(ctx, channelID)
		if errors.Is(err, countdown.ErrTimerNotFound) || errors.Is(err, countdown.ErrNotPaused) {
			r.reportError(ctx, channelID, "resume", err)
			return
		}
		r.logResult("resume", channelID, reason, err)
	}()
}

func (r *Router) status(ctx context.Context, channelID string) {
	st, ok := r.engine.Status(channelID)
	if !ok {
		r.notice(ctx, channelID, NoticeTimerNotFound)
		return
	}
	r.notice(ctx, channelID, FormatStatus(st))
}

// FormatStatus renders a countdown status for users.
func FormatStatus(st countdown.Status) string {
	secs := int(st.Remaining / time.Second)
	text := fmt.Sprintf("%02d:%02d remaining", secs/60, secs%60)
	if st.State == countdown.StatePaused {
		return "Timer paused, " + text
	}
	return "Timer running, " + text
}

// reportError turns a user-facing engine error into a notice.
func (r *Router) reportError(ctx context.Context, channelID, op string, err error) {
	switch {
	case errors.Is(err, countdown.ErrTimerNotFound):
		r.notice(ctx, channelID, NoticeTimerNotFound)
	case errors.Is(err, countdown.ErrNotPaused):
		r.notice(ctx, channelID, NoticeNotPaused)
	default:
		r.logger.Warn("command failed", "channel_id", channelID, "command", op, "error", err)
	}
}

// notice posts a transient message that deletes itself after the TTL.
func (r *Router) notice(ctx context.Context, channelID, text string) {
	msg, err := r.messenger.Send(ctx, channelID, text)
	if err != nil {
		r.logger.Warn("sending notice failed", "channel_id", channelID, "error", err)
		return
	}
	if err := r.messenger.Delete(ctx, msg, r.noticeTTL); err != nil {
		r.logger.Debug("scheduling notice deletion failed", "channel_id", channelID, "error", err)
	}
}

func (r *Router) logResult(op, channelID string, reason countdown.ExitReason, err error) {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			r.logger.Debug("countdown cancelled", "channel_id", channelID, "command", op)
			return
		}
		r.logger.Warn("countdown failed", "channel_id", channelID, "command", op, "error", err)
		return
	}
	r.logger.Debug("countdown returned", "channel_id", channelID, "command", op, "reason", reason.String())
}
