package cache

import (
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	value    V
	expireAt time.Time
}

// TTL is a map cache whose entries expire after a fixed duration. Expired
// entries are dropped lazily on Get and Len; there is no background sweeper.
type TTL[V any] struct {
	mu      sync.Mutex
	entries map[string]ttlEntry[V]
	ttl     time.Duration
	now     func() time.Time
}

var _ Cache[int] = (*TTL[int])(nil)

// NewTTL creates a TTL cache whose entries live for d after Set.
// Non-positive durations mean entries never expire.
func NewTTL[V any](d time.Duration) *TTL[V] {
	return &TTL[V]{
		entries: make(map[string]ttlEntry[V]),
		ttl:     d,
		now:     time.Now,
	}
}

func (c *TTL[V]) Get(key string) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	if c.expired(e) {
		delete(c.entries, key)
		var zero V
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := ttlEntry[V]{value: value}
	if c.ttl > 0 {
		e.expireAt = c.now().Add(c.ttl)
	}
	c.entries[key] = e
}

func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ttlEntry[V])
}

func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
		}
	}
	return len(c.entries)
}

func (c *TTL[V]) expired(e ttlEntry[V]) bool {
	return !e.expireAt.IsZero() && c.now().After(e.expireAt)
}
