package glyph

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// MapProvider resolves names from a fixed map.
type MapProvider map[string]Symbol

// Lookup returns the mapped symbol or the Missing placeholder.
func (m MapProvider) Lookup(name string) Symbol {
	if s, ok := m[name]; ok {
		return s
	}
	return Missing(name)
}

// TextProvider renders glyphs as plain text for terminals and logs:
// the icon becomes an hourglass and every digit glyph its bare digit.
type TextProvider struct{}

// Lookup returns the text form of name.
func (TextProvider) Lookup(name string) Symbol {
	if name == DefaultIcon {
		return "⏳"
	}
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		return Symbol(name[:1])
	}
	return Missing(name)
}

// LoadFunc fetches the full name-to-symbol table, e.g. from a remote
// emoji store.
type LoadFunc func() (map[string]Symbol, error)

// Cache is a Provider that loads its table once on first use and serves
// lookups from memory. It is safe for concurrent use.
type Cache struct {
	load  LoadFunc
	group singleflight.Group

	mu      sync.RWMutex
	symbols map[string]Symbol
	loaded  bool
	failed  bool
	lastErr error
}

// NewCache creates a cache backed by load.
func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// Lookup resolves name, loading the table on first use. Concurrent first
// lookups share one load. After a failed load, lookups return the Missing
// placeholder without loading again until an explicit Refresh.
func (c *Cache) Lookup(name string) Symbol {
	c.mu.RLock()
	attempted := c.loaded || c.failed
	c.mu.RUnlock()

	if !attempted {
		_ = c.refresh(false)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.symbols[name]; ok {
		return s
	}
	return Missing(name)
}

// Refresh reloads the table. The previous table is kept on error.
// Calls made while a load is in flight wait for it and share its result.
func (c *Cache) Refresh() error {
	return c.refresh(true)
}

// refresh loads the table. Without force it is a no-op once a load was
// attempted.
func (c *Cache) refresh(force bool) error {
	_, err, _ := c.group.Do("load", func() (any, error) {
		if !force {
			c.mu.RLock()
			attempted, lastErr := c.loaded || c.failed, c.lastErr
			c.mu.RUnlock()
			if attempted {
				return nil, lastErr
			}
		}

		symbols, err := c.load()

		c.mu.Lock()
		defer c.mu.Unlock()

		c.lastErr = err
		if err != nil {
			c.failed = true
			return nil, err
		}
		c.symbols = symbols
		c.loaded = true
		c.failed = false
		return nil, nil
	})
	return err
}

// Len returns the number of cached symbols.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.symbols)
}

// Err returns the error of the most recent load, if any.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Compile-time interface satisfaction checks.
var (
	_ Provider = MapProvider(nil)
	_ Provider = TextProvider{}
	_ Provider = (*Cache)(nil)
)
