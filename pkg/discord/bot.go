package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Intents needed to read commands from guild text channels.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

// Handler processes a chat message and reports whether it was a command.
// *command.Router satisfies it.
type Handler interface {
	Handle(ctx context.Context, channelID, content string) bool
}

// Bot feeds messages from a Discord gateway session to a Handler.
type Bot struct {
	session *discordgo.Session
	handler Handler
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a gateway session for a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is empty")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	s.Identify.Intents = Intents
	return s, nil
}

// NewBot creates a bot. The handler is called from discordgo's event
// goroutines.
func NewBot(session *discordgo.Session, handler Handler, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		session: session,
		handler: handler,
		logger:  logger,
	}
}

// Run opens the gateway connection and dispatches messages until ctx is
// done. Countdowns started by the handler run under ctx.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx, b.cancel = context.WithCancel(ctx)
	defer b.cancel()

	remove := b.session.AddHandler(b.onMessageCreate)
	defer remove()

	readyRemove := b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("connected to discord", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	defer readyRemove()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening gateway: %w", err)
	}

	<-b.ctx.Done()

	if err := b.session.Close(); err != nil {
		b.logger.Warn("closing gateway failed", "error", err)
	}
	return nil
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	b.dispatch(selfID, m.Message)
}

// dispatch hands a message to the handler unless it came from a bot.
func (b *Bot) dispatch(selfID string, m *discordgo.Message) bool {
	if m == nil || m.Author == nil {
		return false
	}
	if m.Author.ID == selfID || m.Author.Bot {
		return false
	}

	ctx := b.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	handled := b.handler.Handle(ctx, m.ChannelID, m.Content)
	if handled {
		b.logger.Debug("command handled", "channel_id", m.ChannelID, "author", m.Author.Username)
	}
	return handled
}
