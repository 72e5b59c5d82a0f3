// Package cache provides small in-memory caches used to memoize remote
// SPARQL endpoint results. Two implementations are provided: a plain
// mutex-guarded map and a TTL variant that expires entries after a
// configurable duration.
package cache

import "errors"

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache is a generic key/value store keyed by string.
type Cache[V any] interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (V, error)

	// Set stores value under key, replacing any existing entry.
	Set(key string, value V)

	// Delete removes the entry for key if present.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// Len returns the number of live entries.
	Len() int
}
