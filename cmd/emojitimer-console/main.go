// Command emojitimer-console runs countdowns in a terminal.
//
// It uses the same engine and command handling as the Discord bot but prints
// each message update as a line of text, with digits instead of custom
// emojis. It is useful to try out timing settings from a config file and to
// capture event logs without a bot token.
//
// Usage:
//
//	emojitimer-console [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-log-level string   Log level: debug, info, warn, error (overrides config)
//	-event-log string   File path for countdown event capture (CBOR format)
//
// Examples:
//
//	# Start a console and type "countdown 1"
//	emojitimer-console
//
//	# Capture events for later analysis with emojitimer-log
//	emojitimer-console -event-log console.tlog
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/emoji-timer/emojitimer-go/cmd/emojitimer-console/interactive"
	"github.com/emoji-timer/emojitimer-go/pkg/config"
	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

var (
	configFile = flag.String("config", "", "Configuration file path (YAML)")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	eventLog   = flag.String("event-log", "", "File path for countdown event capture (CBOR format)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *eventLog != "" {
		cfg.Log.EventLog = *eventLog
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()

	opts := interactive.Options{
		Countdown: cfg.Countdown(),
		Icon:      cfg.Timer.Icon,
		Prefix:    cfg.Prefix,
		LogLevel:  level,
	}

	if cfg.Log.EventLog != "" {
		fl, err := log.NewFileLogger(cfg.Log.EventLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: creating event log: %v\n", err)
			os.Exit(1)
		}
		defer fl.Close()
		opts.Events = fl
	}

	console, err := interactive.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts.Events != nil {
		console.Logger().Info("capturing countdown events", "path", cfg.Log.EventLog)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	console.Run(ctx, cancel)
}
