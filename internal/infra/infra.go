// Package infra holds the caching and rate limiting shared by network
// clients.
package infra

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// --- TTL cache ---

type cacheEntry[V any] struct {
	value   V
	expires time.Time
}

// Cache maps string keys to values that expire a fixed TTL after Set. It is
// safe for concurrent use.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	ttl     time.Duration
	now     func() time.Time
}

// NewCache returns an empty cache whose entries live for ttl.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]cacheEntry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the live value under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expires) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = cacheEntry[V]{value: value, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len counts stored entries, expired ones included until Cleanup.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cleanup drops expired entries and reports how many were removed.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// --- Rate limiter ---

// RateLimiter is a token bucket allowing perSecond requests with bursts of
// up to burst.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter. A non-positive perSecond disables
// limiting; burst is raised to at least 1.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, max(burst, 1))}
}

// Wait blocks until a token is available. It fails at once when ctx is done
// or its deadline comes before the next token.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}
