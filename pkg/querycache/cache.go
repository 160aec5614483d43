// Package querycache caches read results that go stale after a fixed window.
//
// Stale entries stay readable through Peek until they age out of the
// underlying expirable LRU, so callers can show old data while refetching.
package querycache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultStaleTime is the window during which a cached entry is served without refetching.
const DefaultStaleTime = time.Minute

// DefaultRetention is how long an entry stays readable through Peek after it was fetched.
const DefaultRetention = 5 * time.Minute

// DefaultMaxSize bounds the number of entries kept by New.
const DefaultMaxSize = 256

// Cache is a size-bounded LRU cache with a staleness window.
type Cache[T any] struct {
	lru       *expirable.LRU[string, entry[T]]
	staleTime time.Duration

	now func() time.Time
}

type entry[T any] struct {
	data      T
	fetchedAt time.Time
}

// New creates a cache holding at most maxSize entries that go stale after staleTime.
// Entries are dropped for good after DefaultRetention, or staleTime when that is longer.
func New[T any](maxSize int, staleTime time.Duration) *Cache[T] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	retention := DefaultRetention
	if staleTime > retention {
		retention = staleTime
	}

	return &Cache[T]{
		lru:       expirable.NewLRU[string, entry[T]](maxSize, nil, retention),
		staleTime: staleTime,
		now:       time.Now,
	}
}

// Get returns the value stored under key if it is still fresh.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	e, ok := c.lru.Get(key)
	if !ok || c.now().Sub(e.fetchedAt) >= c.staleTime {
		return zero, false
	}

	return e.data, true
}

// Peek returns the value stored under key, fresh or stale, without touching recency.
func (c *Cache[T]) Peek(key string) (T, bool) {
	e, ok := c.lru.Peek(key)
	return e.data, ok
}

// Set stores data under key and marks it fresh.
func (c *Cache[T]) Set(key string, data T) {
	c.lru.Add(key, entry[T]{data: data, fetchedAt: c.now()})
}

// Invalidate removes key from the cache.
func (c *Cache[T]) Invalidate(key string) {
	c.lru.Remove(key)
}

// InvalidatePrefix removes every key starting with prefix and returns how many were removed.
func (c *Cache[T]) InvalidatePrefix(prefix string) int {
	var removed int

	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) && c.lru.Remove(key) {
			removed++
		}
	}

	return removed
}
