// Package command turns chat messages into countdown operations.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultPrefix marks a chat message as a command.
const DefaultPrefix = "!"

// ErrInvalidArgument is returned for a malformed command argument.
var ErrInvalidArgument = errors.New("invalid argument")

// Kind identifies a command.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindCountdown
	KindStop
	KindPause
	KindResume
	KindStatus
)

var kindNames = map[string]Kind{
	"countdown": KindCountdown,
	"stop":      KindStop,
	"pause":     KindPause,
	"resume":    KindResume,
	"status":    KindStatus,
}

// String returns the command name.
func (k Kind) String() string {
	switch k {
	case KindCountdown:
		return "countdown"
	case KindStop:
		return "stop"
	case KindPause:
		return "pause"
	case KindResume:
		return "resume"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Command is a parsed chat command.
type Command struct {
	Kind Kind

	// Minutes is the countdown length. Zero means the configured default.
	Minutes int
}

// Parse reads a chat message. It returns ok=false for messages that are
// not addressed to the bot. Unknown command names are reported as
// KindUnknown so the caller can ignore them.
func Parse(prefix, content string) (cmd Command, ok bool, err error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, prefix) {
		return Command{}, false, nil
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return Command{}, false, nil
	}

	kind, known := kindNames[strings.ToLower(fields[0])]
	if !known {
		return Command{Kind: KindUnknown}, true, nil
	}
	cmd = Command{Kind: kind}

	if kind == KindCountdown && len(fields) > 1 {
		minutes, err := strconv.Atoi(fields[1])
		if err != nil || minutes < 0 {
			return cmd, true, fmt.Errorf("%w: minutes must be a non-negative integer, got %q", ErrInvalidArgument, fields[1])
		}
		cmd.Minutes = minutes
	}
	return cmd, true, nil
}
