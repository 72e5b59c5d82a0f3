package cache

import "sync"

// Simple is a mutex-guarded map cache with no eviction policy.
type Simple[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

var _ Cache[int] = (*Simple[int])(nil)

// NewSimple creates an empty Simple cache.
func NewSimple[V any]() *Simple[V] {
	return &Simple[V]{entries: make(map[string]V)}
}

func (c *Simple[V]) Get(key string) (V, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return v, nil
}

func (c *Simple[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *Simple[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Simple[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]V)
}

func (c *Simple[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
