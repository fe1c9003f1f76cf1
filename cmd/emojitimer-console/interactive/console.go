// Package interactive provides a terminal front end that drives countdowns
// without a chat platform.
package interactive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/emoji-timer/emojitimer-go/pkg/command"
	"github.com/emoji-timer/emojitimer-go/pkg/countdown"
	"github.com/emoji-timer/emojitimer-go/pkg/glyph"
	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

// DefaultChannel is the channel commands go to until another is selected.
const DefaultChannel = "console"

// Options configures a Console.
type Options struct {
	// Countdown configures the engine.
	Countdown countdown.Config

	// Icon is the glyph name shown before the digits.
	Icon string

	// Prefix is the chat command prefix. Typed commands may omit it.
	Prefix string

	// LogLevel filters operational logs printed above the prompt.
	LogLevel slog.Level

	// Events receives countdown events. Nil disables capture.
	Events log.Logger
}

// Console handles interactive mode for emojitimer-console.
type Console struct {
	engine   *countdown.Engine
	router   *command.Router
	terminal *Terminal
	logger   *slog.Logger
	rl       *readline.Instance
	out      io.Writer

	channel string
}

// New creates a console with its own engine rendering plain text digits.
func New(opts Options) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(DefaultChannel),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(rl.Stderr(), &slog.HandlerOptions{Level: opts.LogLevel}))

	c, err := newConsole(rl.Stdout(), logger, opts)
	if err != nil {
		rl.Close()
		return nil, err
	}
	c.rl = rl
	return c, nil
}

func newConsole(out io.Writer, logger *slog.Logger, opts Options) (*Console, error) {
	terminal := NewTerminal(out)

	engine, err := countdown.NewEngine(terminal, glyph.NewRenderer(glyph.TextProvider{}, opts.Icon), opts.Countdown)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logger)
	if opts.Events != nil {
		engine.SetEventLogger(opts.Events)
	}

	router := command.NewRouter(engine, terminal, command.Options{
		Prefix: opts.Prefix,
		Logger: logger,
	})

	return &Console{
		engine:   engine,
		router:   router,
		terminal: terminal,
		logger:   logger,
		out:      out,
		channel:  DefaultChannel,
	}, nil
}

func prompt(channel string) string {
	return "timer #" + channel + "> "
}

// Logger returns the logger that prints above the prompt.
func (c *Console) Logger() *slog.Logger {
	return c.logger
}

// Run starts the interactive command loop. It returns after quit, EOF or
// ctx cancellation, once all countdowns have been stopped.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()
	defer c.Shutdown()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if quit := c.exec(ctx, line); quit {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// exec runs one input line and reports whether the console should exit.
func (c *Console) exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(strings.TrimPrefix(parts[0], c.router.Prefix()))
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "channel", "ch":
		c.cmdChannel(args)

	case "drop":
		c.cmdDrop(args)

	case "list", "ls":
		c.cmdList()

	case "quit", "exit", "q":
		return true

	default:
		content := c.router.Prefix() + cmd
		if len(args) > 0 {
			content += " " + strings.Join(args, " ")
		}
		if !c.router.Handle(ctx, c.channel, content) {
			fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Emoji Timer Console Commands:
  Countdown:
    countdown [minutes] - Start a countdown (default from config)
    pause               - Freeze the countdown
    resume              - Continue a paused countdown
    stop                - End the countdown and delete its message
    status              - Show the remaining time

  Channels:
    channel [name]      - Show or switch the current channel
    list                - List active countdowns and shown messages
    drop <id>           - Remove a message as if deleted by a moderator

  General:
    help                - Show this help
    quit                - Exit console`)
}

func (c *Console) cmdChannel(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(c.out, "Current channel: %s\n", c.channel)
		return
	}
	c.channel = strings.TrimPrefix(args[0], "#")
	if c.rl != nil {
		c.rl.SetPrompt(prompt(c.channel))
	}
	fmt.Fprintf(c.out, "Switched to #%s\n", c.channel)
}

func (c *Console) cmdDrop(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: drop <message-id>")
		return
	}
	if !c.terminal.Drop(args[0]) {
		fmt.Fprintf(c.out, "No message %s\n", args[0])
	}
}

func (c *Console) cmdList() {
	channels := c.engine.Channels()
	if len(channels) == 0 {
		fmt.Fprintln(c.out, "No active countdowns")
	}
	for _, ch := range channels {
		st, ok := c.engine.Status(ch)
		if !ok {
			continue
		}
		fmt.Fprintf(c.out, "  #%-12s %s\n", ch, command.FormatStatus(st))
	}

	if ids := c.terminal.Live(); len(ids) > 0 {
		fmt.Fprintf(c.out, "Messages shown: %s\n", strings.Join(ids, ", "))
	}
}

// Shutdown waits for running countdowns to end after stopping them and
// flushes pending message deletions.
func (c *Console) Shutdown() {
	ctx := context.Background()
	for _, ch := range c.engine.Channels() {
		if err := c.engine.Stop(ctx, ch); err != nil {
			c.logger.Debug("stopping countdown failed", "channel_id", ch, "error", err)
		}
	}
	c.router.Wait()
	c.terminal.Close()
}
