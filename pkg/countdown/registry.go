package countdown

import (
	"sort"
	"sync"

	"github.com/emoji-timer/emojitimer-go/pkg/clock"
)

// Entry is a channel's countdown: its clock and display message, which are
// always added and removed together.
type Entry struct {
	// RunID identifies the countdown run in captured events.
	RunID string

	// Clock is the countdown state.
	Clock *clock.Countdown

	// Message is the display message being edited.
	Message *Message
}

// slot is the registry's owned copy of an entry.
type slot struct {
	Entry

	// looping is set while a render loop serves this entry.
	looping bool
}

// Registry maps channel IDs to at most one live countdown each.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		slots: make(map[string]*slot),
	}
}

// Add stores an entry for the channel and marks a render loop as serving
// it. It returns the entry it replaced, if any.
func (r *Registry) Add(channelID string, e Entry) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, replaced := r.slots[channelID]
	r.slots[channelID] = &slot{Entry: e, looping: true}
	if replaced {
		return prev.Entry, true
	}
	return Entry{}, false
}

// Get returns a copy of the channel's entry.
func (r *Registry) Get(channelID string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[channelID]
	if !ok {
		return Entry{}, false
	}
	return s.Entry, true
}

// Remove deletes the channel's entry and returns it.
func (r *Registry) Remove(channelID string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[channelID]
	if !ok {
		return Entry{}, false
	}
	delete(r.slots, channelID)
	return s.Entry, true
}

// Len returns the number of live countdowns.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Channels returns the channel IDs with a live countdown, sorted.
func (r *Registry) Channels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.slots))
	for id := range r.slots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// The methods below identify an entry by its clock, so a loop never acts
// on an entry that replaced the one it was started for.

// lookup returns the slot for channelID if it still belongs to c.
// Caller must hold r.mu.
func (r *Registry) lookup(channelID string, c *clock.Countdown) *slot {
	s, ok := r.slots[channelID]
	if !ok || s.Clock != c {
		return nil
	}
	return s
}

// live reports whether the entry for c is still registered.
func (r *Registry) live(channelID string, c *clock.Countdown) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(channelID, c) != nil
}

// message returns the current display message of the entry for c.
func (r *Registry) message(channelID string, c *clock.Countdown) (*Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.lookup(channelID, c)
	if s == nil {
		return nil, false
	}
	return s.Message, true
}

// replaceMessage swaps the display message of the entry for c.
// It returns false if the entry is gone.
func (r *Registry) replaceMessage(channelID string, c *clock.Countdown, msg *Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.lookup(channelID, c)
	if s == nil {
		return false
	}
	s.Message = msg
	return true
}

// removeEntry deletes the entry for c, leaving a newer entry untouched.
func (r *Registry) removeEntry(channelID string, c *clock.Countdown) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.lookup(channelID, c)
	if s == nil {
		return Entry{}, false
	}
	delete(r.slots, channelID)
	return s.Entry, true
}

// shouldExit is the loop's cooperative cancellation check. It returns true
// if the entry for c is gone or its clock is stopped, and in the latter
// case records that no loop serves the entry any more.
func (r *Registry) shouldExit(channelID string, c *clock.Countdown) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.lookup(channelID, c)
	if s == nil {
		return true
	}
	if c.Stopped() {
		s.looping = false
		return true
	}
	return false
}

// release records that the loop for c ended without observing a stop.
func (r *Registry) release(channelID string, c *clock.Countdown) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s := r.lookup(channelID, c); s != nil {
		s.looping = false
	}
}

// resume restarts a paused entry. startLoop is false when the loop that
// was paused is still running and will carry on by itself.
func (r *Registry) resume(channelID string) (e Entry, startLoop bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[channelID]
	if !ok {
		return Entry{}, false, ErrTimerNotFound
	}
	if err := s.Clock.Resume(); err != nil {
		return Entry{}, false, ErrNotPaused
	}
	if s.looping {
		return s.Entry, false, nil
	}
	s.looping = true
	return s.Entry, true, nil
}
