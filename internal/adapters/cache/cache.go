// Package cache keeps recently fetched feed tables in memory so a burst
// of dashboard loads does not hammer the upstream sheet export.
package cache

import (
	"sync"
	"time"

	"github.com/okian/preserve/internal/adapters/feed"
	"github.com/okian/preserve/pkg/metrics"
)

const defaultTTL = 5 * time.Minute

type entry struct {
	table     *feed.Table
	fetchedAt time.Time
}

// Cache is a TTL keyed store for feed tables. Expired entries stay in the
// map until overwritten; Get simply stops returning them.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache with the given options applied.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     defaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached table for key together with its fetch time. A
// missing or expired entry reports ok=false.
func (c *Cache) Get(key string) (*feed.Table, time.Time, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		metrics.RecordCacheMiss()
		return nil, time.Time{}, false
	}
	metrics.RecordCacheHit()
	return e.table, e.fetchedAt, true
}

// Put stores a freshly fetched table under key.
func (c *Cache) Put(key string, table *feed.Table) {
	c.mu.Lock()
	c.entries[key] = entry{table: table, fetchedAt: c.now()}
	c.mu.Unlock()
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
