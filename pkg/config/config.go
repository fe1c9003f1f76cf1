// Package config loads the emoji timer configuration from YAML with
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/emoji-timer/emojitimer-go/pkg/command"
	"github.com/emoji-timer/emojitimer-go/pkg/countdown"
	"github.com/emoji-timer/emojitimer-go/pkg/glyph"
)

// Environment variables read by ApplyEnv.
const (
	EnvGuildID      = "GUILD_ID_FOR_EMOJIS"
	DefaultTokenEnv = "TOKEN_OF_EMOJI_TIMER"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config is the bot configuration.
type Config struct {
	// Prefix marks chat messages as commands.
	Prefix string `yaml:"prefix"`

	// EmojiGuildID is the guild whose custom emojis provide the glyphs.
	EmojiGuildID string `yaml:"emoji_guild_id"`

	// TokenEnv names the environment variable holding the bot token.
	TokenEnv string `yaml:"token_env"`

	// Token is read from TokenEnv, never from the file.
	Token string `yaml:"-"`

	Timer TimerConfig `yaml:"timer"`
	Log   LogConfig   `yaml:"log"`
}

// TimerConfig holds countdown behavior.
type TimerConfig struct {
	DefaultMinutes  int           `yaml:"default_minutes"`
	MinEditInterval time.Duration `yaml:"min_edit_interval"`
	FinishDelay     time.Duration `yaml:"finish_delay"`
	LagThreshold    time.Duration `yaml:"lag_threshold"`
	NoticeTTL       time.Duration `yaml:"notice_ttl"`
	Icon            string        `yaml:"icon"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// EventLog is the path of the CBOR event capture file. Empty disables it.
	EventLog string `yaml:"event_log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prefix:   command.DefaultPrefix,
		TokenEnv: DefaultTokenEnv,
		Timer: TimerConfig{
			DefaultMinutes:  countdown.DefaultMinutes,
			MinEditInterval: countdown.DefaultMinEditInterval,
			FinishDelay:     countdown.DefaultFinishDelay,
			LagThreshold:    countdown.DefaultLagThreshold,
			NoticeTTL:       command.DefaultNoticeTTL,
			Icon:            glyph.DefaultIcon,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Parse decodes YAML on top of the defaults. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Load reads a YAML config file. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// ApplyEnv overrides the emoji guild and token from the environment.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvGuildID); ok && v != "" {
		c.EmojiGuildID = v
	}
	tokenEnv := c.TokenEnv
	if tokenEnv == "" {
		tokenEnv = DefaultTokenEnv
	}
	if v, ok := lookup(tokenEnv); ok {
		c.Token = strings.TrimSpace(v)
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Prefix) == "" {
		return fmt.Errorf("%w: prefix must not be empty", ErrInvalid)
	}
	if c.Timer.NoticeTTL <= 0 {
		return fmt.Errorf("%w: timer.notice_ttl must be positive, got %v", ErrInvalid, c.Timer.NoticeTTL)
	}
	if c.Timer.Icon == "" {
		return fmt.Errorf("%w: timer.icon must not be empty", ErrInvalid)
	}
	if err := c.Countdown().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Countdown returns the render loop settings.
func (c *Config) Countdown() countdown.Config {
	return countdown.Config{
		DefaultMinutes:  c.Timer.DefaultMinutes,
		MinEditInterval: c.Timer.MinEditInterval,
		FinishDelay:     c.Timer.FinishDelay,
		LagThreshold:    c.Timer.LagThreshold,
	}
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return level, nil
}
