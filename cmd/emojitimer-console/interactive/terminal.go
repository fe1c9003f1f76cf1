package interactive

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/emoji-timer/emojitimer-go/pkg/countdown"
)

// Terminal is a countdown.Messenger that prints messages to a writer
// instead of posting them to a chat. Every line is tagged with the channel
// and message ID so edits of the same message can be followed.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	nextID  int
	live    map[string]string
	pending map[string]*time.Timer
	closed  bool
}

// NewTerminal creates a terminal messenger writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:     out,
		live:    make(map[string]string),
		pending: make(map[string]*time.Timer),
	}
}

// Send prints text as a new message.
func (t *Terminal) Send(ctx context.Context, channelID, text string) (*countdown.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := strconv.Itoa(t.nextID)
	t.live[id] = channelID
	fmt.Fprintf(t.out, "#%s [%s] %s\n", channelID, id, text)

	return &countdown.Message{ID: id, ChannelID: channelID, Content: text}, nil
}

// Edit prints the new text of a message.
func (t *Terminal) Edit(ctx context.Context, msg *countdown.Message, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.live[msg.ID]; !ok {
		return fmt.Errorf("edit message %s: %w", msg.ID, countdown.ErrMessageNotFound)
	}
	fmt.Fprintf(t.out, "#%s [%s] %s\n", msg.ChannelID, msg.ID, text)
	return nil
}

// Delete removes a message, after delay if positive. Deleting a message
// that is already gone is a no-op.
func (t *Terminal) Delete(_ context.Context, msg *countdown.Message, delay time.Duration) error {
	id := msg.ID

	t.mu.Lock()
	defer t.mu.Unlock()

	if delay <= 0 || t.closed {
		t.removeLocked(id)
		return nil
	}
	if _, ok := t.pending[id]; ok {
		return nil
	}
	t.pending[id] = time.AfterFunc(delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if _, ok := t.pending[id]; !ok {
			return
		}
		t.removeLocked(id)
	})
	return nil
}

// Drop removes a message without going through Delete, the way a chat
// moderator would. It reports whether the message existed.
func (t *Terminal) Drop(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	channelID, ok := t.live[id]
	if !ok {
		return false
	}
	delete(t.live, id)
	if timer, ok := t.pending[id]; ok {
		timer.Stop()
		delete(t.pending, id)
	}
	fmt.Fprintf(t.out, "#%s [%s] dropped\n", channelID, id)
	return true
}

// Live returns the IDs of messages still shown, in send order.
func (t *Terminal) Live() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.live))
	for id := range t.live {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})
	return ids
}

// Close removes every message with a pending deletion. Later delayed
// deletions happen at once.
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	for id, timer := range t.pending {
		timer.Stop()
		t.removeLocked(id)
	}
}

func (t *Terminal) removeLocked(id string) {
	delete(t.pending, id)
	channelID, ok := t.live[id]
	if !ok {
		return
	}
	delete(t.live, id)
	fmt.Fprintf(t.out, "#%s [%s] deleted\n", channelID, id)
}
