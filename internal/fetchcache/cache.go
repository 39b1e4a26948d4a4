package fetchcache

import (
	"sync"
	"time"
)

// DefaultTTL is the validity window applied when no TTL is configured.
const DefaultTTL = 300 * time.Second

type entry struct {
	value     interface{}
	fetchedAt time.Time
}

// Cache is an in-memory TTL cache shared across concurrent scans.
// Entries expire lazily on read; there is no background sweeper. Writes are
// last-writer-wins. A stale read within the TTL window is acceptable, so
// readers take only the read lock.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	// now is swappable for tests
	now func() time.Time
}

// New creates a new cache with the given TTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a value. A read is a hit iff now - fetchedAt < TTL.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().Sub(e.fetchedAt) >= c.ttl {
		// Expired: drop lazily so the map does not grow without bound
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.fetchedAt.Equal(e.fetchedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores a value, stamping it with the current time.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// SetAt stores a value with an explicit fetch timestamp; used in tests.
func (c *Cache) SetAt(key string, value interface{}, fetchedAt time.Time) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, fetchedAt: fetchedAt}
	c.mu.Unlock()
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// WithNow overrides the clock; used in tests.
func (c *Cache) WithNow(now func() time.Time) *Cache {
	c.now = now
	return c
}
