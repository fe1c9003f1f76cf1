package countdown

import (
	"context"
	"errors"
	"time"
)

// ErrMessageNotFound is returned by Messenger.Edit when the message no
// longer exists on the platform.
var ErrMessageNotFound = errors.New("message not found")

// Message is a handle to a sent chat message.
type Message struct {
	// ID is the platform's message identifier.
	ID string

	// ChannelID is the channel the message lives in.
	ChannelID string

	// Content is the last text known to be displayed.
	Content string
}

// Messenger sends, edits and deletes chat messages.
type Messenger interface {
	// Send posts text to a channel and returns the new message.
	Send(ctx context.Context, channelID, text string) (*Message, error)

	// Edit replaces the message text. It returns an error wrapping
	// ErrMessageNotFound if the message was removed.
	Edit(ctx context.Context, msg *Message, text string) error

	// Delete removes the message after delay. It is best-effort: a message
	// that is already gone is not an error. A positive delay must not block
	// the caller.
	Delete(ctx context.Context, msg *Message, delay time.Duration) error
}
