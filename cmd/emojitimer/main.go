// Command emojitimer is a Discord bot that shows countdowns as emoji.
//
// The bot answers chat commands in any channel it can read:
//
//	!countdown [minutes]  start a countdown (default 60 minutes)
//	!pause                freeze the channel's countdown
//	!resume               continue a paused countdown
//	!stop                 end the countdown and delete its message
//	!status               show the remaining time
//
// Digit glyphs are custom emojis stored in one guild, named like
// "5_rightmost", "5_right_align", "5_with_colon" and "5_", plus the timer
// icon (default "hourglass").
//
// Usage:
//
//	emojitimer [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-guild string       Guild ID storing the glyph emojis (overrides config and env)
//	-log-level string   Log level: debug, info, warn, error (overrides config)
//	-event-log string   File path for countdown event capture (CBOR format)
//	-debug-events       Also write countdown events to the debug log
//
// Environment:
//
//	TOKEN_OF_EMOJI_TIMER  Bot token (the variable name is configurable)
//	GUILD_ID_FOR_EMOJIS   Guild ID storing the glyph emojis
//
// Examples:
//
//	# Run with defaults from the environment
//	TOKEN_OF_EMOJI_TIMER=... GUILD_ID_FOR_EMOJIS=1234 emojitimer
//
//	# Run with a config file and event capture
//	emojitimer -config /etc/emojitimer.yaml -event-log /var/log/emojitimer.tlog
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emoji-timer/emojitimer-go/pkg/command"
	"github.com/emoji-timer/emojitimer-go/pkg/config"
	"github.com/emoji-timer/emojitimer-go/pkg/countdown"
	"github.com/emoji-timer/emojitimer-go/pkg/discord"
	"github.com/emoji-timer/emojitimer-go/pkg/glyph"
	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

var (
	configFile  = flag.String("config", "", "Configuration file path (YAML)")
	guildID     = flag.String("guild", "", "Guild ID storing the glyph emojis")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	eventLog    = flag.String("event-log", "", "File path for countdown event capture (CBOR format)")
	debugEvents = flag.Bool("debug-events", false, "Also write countdown events to the debug log")
)

const (
	// shutdownTimeout bounds the cleanup of live countdown messages.
	shutdownTimeout = 10 * time.Second

	// glyphRetryInterval is how often a failed glyph load is retried.
	glyphRetryInterval = time.Minute
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.Token == "" {
		fmt.Fprintf(os.Stderr, "Error: bot token is not set (environment variable %s)\n", cfg.TokenEnv)
		os.Exit(1)
	}
	if cfg.EmojiGuildID == "" {
		logger.Warn("no emoji guild configured, glyphs will render as placeholders", "env", config.EnvGuildID)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("emojitimer failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	if *guildID != "" {
		cfg.EmojiGuildID = *guildID
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *eventLog != "" {
		cfg.Log.EventLog = *eventLog
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		return err
	}

	messenger := discord.NewMessenger(session, logger)

	emojis := glyph.NewCache(discord.EmojiLoader(session, cfg.EmojiGuildID))
	glyphsLoaded := emojis.Refresh() == nil
	if glyphsLoaded {
		logger.Info("glyph emojis loaded", "guild_id", cfg.EmojiGuildID, "count", emojis.Len())
	} else {
		logger.Warn("loading glyph emojis failed", "guild_id", cfg.EmojiGuildID, "error", emojis.Err())
	}

	engine, err := countdown.NewEngine(messenger, glyph.NewRenderer(emojis, cfg.Timer.Icon), cfg.Countdown())
	if err != nil {
		return err
	}
	engine.SetLogger(logger)

	events, closeEvents, err := eventLogger(cfg, logger)
	if err != nil {
		return err
	}
	defer closeEvents()
	engine.SetEventLogger(events)

	router := command.NewRouter(engine, messenger, command.Options{
		Prefix:    cfg.Prefix,
		NoticeTTL: cfg.Timer.NoticeTTL,
		Logger:    logger,
	})
	bot := discord.NewBot(session, router, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !glyphsLoaded && cfg.EmojiGuildID != "" {
		go retryGlyphs(ctx, emojis, cfg.EmojiGuildID, logger)
	}

	logger.Info("starting emojitimer", "prefix", cfg.Prefix)
	if err := bot.Run(ctx); err != nil {
		return err
	}

	logger.Info("shutting down")
	router.Wait()

	cleanupCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, channelID := range engine.Channels() {
		if err := engine.Stop(cleanupCtx, channelID); err != nil {
			logger.Debug("stopping countdown failed", "channel_id", channelID, "error", err)
		}
	}
	messenger.Close(cleanupCtx)

	logger.Info("goodbye")
	return nil
}

// retryGlyphs reloads the glyph table until it succeeds or ctx ends.
func retryGlyphs(ctx context.Context, emojis *glyph.Cache, guildID string, logger *slog.Logger) {
	ticker := time.NewTicker(glyphRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := emojis.Refresh(); err != nil {
			logger.Debug("retrying glyph emoji load failed", "guild_id", guildID, "error", err)
			continue
		}
		logger.Info("glyph emojis loaded", "guild_id", guildID, "count", emojis.Len())
		return
	}
}

// eventLogger builds the countdown event sink from the config and flags.
func eventLogger(cfg *config.Config, logger *slog.Logger) (log.Logger, func(), error) {
	var sinks []log.Logger
	closeFn := func() {}

	if cfg.Log.EventLog != "" {
		fl, err := log.NewFileLogger(cfg.Log.EventLog)
		if err != nil {
			return nil, nil, fmt.Errorf("creating event log: %w", err)
		}
		logger.Info("capturing countdown events", "path", cfg.Log.EventLog)
		sinks = append(sinks, fl)
		closeFn = func() {
			if dropped := fl.Dropped(); dropped > 0 {
				logger.Warn("events dropped from capture", "count", dropped)
			}
			if err := fl.Close(); err != nil {
				logger.Warn("closing event log failed", "error", err)
			}
		}
	}
	if *debugEvents {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}

	switch len(sinks) {
	case 0:
		return log.NoopLogger{}, closeFn, nil
	case 1:
		return sinks[0], closeFn, nil
	default:
		return log.NewMultiLogger(sinks...), closeFn, nil
	}
}
