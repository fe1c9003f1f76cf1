// Package discord connects countdowns to Discord channels.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/emoji-timer/emojitimer-go/pkg/countdown"
)

// sessionAPI is the subset of *discordgo.Session used by this package.
type sessionAPI interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	GuildEmojis(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error)
}

// Messenger implements countdown.Messenger over the Discord REST API.
// Delayed deletions run on timers; Close flushes them.
type Messenger struct {
	session sessionAPI
	logger  *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingDelete
	closed  bool
}

type pendingDelete struct {
	timer     *time.Timer
	channelID string
	messageID string
}

// NewMessenger creates a messenger on top of a session.
func NewMessenger(session sessionAPI, logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Messenger{
		session: session,
		logger:  logger,
		pending: make(map[string]*pendingDelete),
	}
}

// Send posts text to a channel.
func (m *Messenger) Send(ctx context.Context, channelID, text string) (*countdown.Message, error) {
	msg, err := m.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("send to channel %s: %w", channelID, err)
	}
	return &countdown.Message{ID: msg.ID, ChannelID: msg.ChannelID, Content: msg.Content}, nil
}

// Edit replaces the message text. A deleted message yields an error
// wrapping countdown.ErrMessageNotFound.
func (m *Messenger) Edit(ctx context.Context, msg *countdown.Message, text string) error {
	_, err := m.session.ChannelMessageEdit(msg.ChannelID, msg.ID, text, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("edit message %s: %w", msg.ID, countdown.ErrMessageNotFound)
		}
		return fmt.Errorf("edit message %s: %w", msg.ID, err)
	}
	return nil
}

// Delete removes the message now, or after delay without blocking.
// Messages that are already gone are ignored.
func (m *Messenger) Delete(ctx context.Context, msg *countdown.Message, delay time.Duration) error {
	channelID, messageID := msg.ChannelID, msg.ID

	if delay <= 0 {
		return m.deleteNow(ctx, channelID, messageID)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return m.deleteNow(ctx, channelID, messageID)
	}
	defer m.mu.Unlock()

	if _, ok := m.pending[messageID]; ok {
		return nil
	}

	p := &pendingDelete{channelID: channelID, messageID: messageID}
	p.timer = time.AfterFunc(delay, func() {
		m.mu.Lock()
		delete(m.pending, messageID)
		m.mu.Unlock()

		if err := m.deleteNow(context.Background(), channelID, messageID); err != nil {
			m.logger.Debug("delayed delete failed", "channel_id", channelID, "message_id", messageID, "error", err)
		}
	})
	m.pending[messageID] = p
	return nil
}

// Pending returns the number of scheduled deletions.
func (m *Messenger) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Close runs all scheduled deletions immediately. Later delayed deletions
// are also run immediately.
func (m *Messenger) Close(ctx context.Context) {
	m.mu.Lock()
	m.closed = true
	var flush []*pendingDelete
	for id, p := range m.pending {
		if p.timer.Stop() {
			flush = append(flush, p)
		}
		delete(m.pending, id)
	}
	m.mu.Unlock()

	for _, p := range flush {
		if err := m.deleteNow(ctx, p.channelID, p.messageID); err != nil {
			m.logger.Debug("flushing delete failed", "channel_id", p.channelID, "message_id", p.messageID, "error", err)
		}
	}
}

func (m *Messenger) deleteNow(ctx context.Context, channelID, messageID string) error {
	err := m.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("delete message %s: %w", messageID, err)
	}
	return nil
}

// isNotFound reports whether err says the message does not exist.
func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

var _ countdown.Messenger = (*Messenger)(nil)
