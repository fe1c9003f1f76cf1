package clock

import (
	"context"
	"sync"
	"time"
)

// Source provides the current time. This interface allows for testing
// with deterministic timestamps.
type Source interface {
	Now() time.Time
}

// realSource implements Source using the standard time package.
type realSource struct{}

func (realSource) Now() time.Time {
	return time.Now()
}

// Real returns the default source that uses real time.
func Real() Source {
	return realSource{}
}

// Sleep blocks for d or until ctx is done, whichever happens first.
// It returns ctx.Err() when the context ended the wait.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Mock is a manually advanced Source for tests.
// It is safe for concurrent use.
type Mock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMock creates a mock source starting at the given time.
func NewMock(start time.Time) *Mock {
	return &Mock{current: start}
}

// Now returns the current mocked time.
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set sets the current time.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the current time forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

// Sleep advances the mock time by d instead of blocking.
// It has the same signature as the package-level Sleep.
func (m *Mock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		m.Advance(d)
	}
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ Source = realSource{}
	_ Source = (*Mock)(nil)
)
