package geocode

import (
	"context"
	"strings"
	"sync"
)

type cacheEntry struct {
	result *Result
	err    error
}

// Cache memoizes lookups for the life of one run. Failures are cached
// too: a query that failed once is not retried, which keeps a bad
// address from burning the rate budget on every row that repeats it.
type Cache struct {
	mu      sync.Mutex
	inner   Geocoder
	entries map[string]cacheEntry
}

// NewCache wraps a geocoder with per-run memoization.
func NewCache(inner Geocoder) *Cache {
	return &Cache{
		inner:   inner,
		entries: make(map[string]cacheEntry),
	}
}

var _ Geocoder = (*Cache)(nil)

func (c *Cache) Geocode(ctx context.Context, query string) (*Result, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return entry.result, entry.err
	}
	c.mu.Unlock()

	result, err := c.inner.Geocode(ctx, query)

	c.mu.Lock()
	c.entries[key] = cacheEntry{result: result, err: err}
	c.mu.Unlock()

	return result, err
}
