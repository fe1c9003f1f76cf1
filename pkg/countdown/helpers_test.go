package countdown_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emoji-timer/emojitimer-go/pkg/clock"
	"github.com/emoji-timer/emojitimer-go/pkg/countdown"
	"github.com/emoji-timer/emojitimer-go/pkg/glyph"
	"github.com/emoji-timer/emojitimer-go/pkg/log"
)

var epoch = time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

type sentMessage struct {
	ChannelID string
	ID        string
	Text      string
}

type editedMessage struct {
	ID   string
	Text string
}

type deletedMessage struct {
	ID    string
	Delay time.Duration
}

// fakeMessenger records calls and simulates edit latency on a mock clock.
type fakeMessenger struct {
	src *clock.Mock

	mu      sync.Mutex
	nextID  int
	sends   []sentMessage
	edits   []editedMessage
	deletes []deletedMessage
	gone    map[string]bool
	latency time.Duration

	// onEdit runs after a successful edit was recorded; its error is
	// returned from Edit.
	onEdit func(msg *countdown.Message, text string) error
}

func newFakeMessenger(src *clock.Mock) *fakeMessenger {
	return &fakeMessenger{src: src, gone: make(map[string]bool)}
}

func (f *fakeMessenger) Send(_ context.Context, channelID, text string) (*countdown.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := strconv.Itoa(f.nextID)
	f.sends = append(f.sends, sentMessage{ChannelID: channelID, ID: id, Text: text})
	return &countdown.Message{ID: id, ChannelID: channelID, Content: text}, nil
}

func (f *fakeMessenger) Edit(_ context.Context, msg *countdown.Message, text string) error {
	f.mu.Lock()
	if f.latency > 0 {
		f.src.Advance(f.latency)
	}
	if f.gone[msg.ID] {
		f.mu.Unlock()
		return fmt.Errorf("edit %s: %w", msg.ID, countdown.ErrMessageNotFound)
	}
	f.edits = append(f.edits, editedMessage{ID: msg.ID, Text: text})
	hook := f.onEdit
	f.mu.Unlock()

	if hook != nil {
		return hook(msg, text)
	}
	return nil
}

func (f *fakeMessenger) Delete(_ context.Context, msg *countdown.Message, delay time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gone[msg.ID] = true
	f.deletes = append(f.deletes, deletedMessage{ID: msg.ID, Delay: delay})
	return nil
}

func (f *fakeMessenger) markGone(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gone[id] = true
}

func (f *fakeMessenger) editTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	texts := make([]string, len(f.edits))
	for i, e := range f.edits {
		texts[i] = e.Text
	}
	return texts
}

func (f *fakeMessenger) sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sends...)
}

func (f *fakeMessenger) deleted() []deletedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]deletedMessage(nil), f.deletes...)
}

// eventRecorder captures events and optionally reacts to them.
type eventRecorder struct {
	mu      sync.Mutex
	events  []log.Event
	onEvent func(log.Event)
}

func (r *eventRecorder) Log(event log.Event) {
	r.mu.Lock()
	r.events = append(r.events, event)
	hook := r.onEvent
	r.mu.Unlock()

	if hook != nil {
		hook(event)
	}
}

func (r *eventRecorder) byCategory(c log.Category) []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []log.Event
	for _, e := range r.events {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

func (r *eventRecorder) states() []string {
	var out []string
	for _, e := range r.byCategory(log.CategoryState) {
		out = append(out, e.StateChange.OldState+"->"+e.StateChange.NewState)
	}
	return out
}

type testEngine struct {
	*countdown.Engine
	messenger *fakeMessenger
	src       *clock.Mock
	events    *eventRecorder
}

func newTestEngine(t *testing.T, cfg countdown.Config) *testEngine {
	t.Helper()

	src := clock.NewMock(epoch)
	fm := newFakeMessenger(src)

	engine, err := countdown.NewEngine(fm, glyph.NewRenderer(glyph.TextProvider{}, ""), cfg)
	require.NoError(t, err)

	events := &eventRecorder{}
	engine.SetTimeSource(src, src.Sleep)
	engine.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	engine.SetEventLogger(events)

	return &testEngine{Engine: engine, messenger: fm, src: src, events: events}
}

func (te *testEngine) elapsed() time.Duration {
	return te.src.Now().Sub(epoch)
}
