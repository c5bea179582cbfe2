package cache

import "time"

// Option is the functional option type for the cache.
type Option func(*Cache)

// WithTTL overrides the default entry lifetime. Non-positive values are
// ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}
