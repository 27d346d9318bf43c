// Package cache provides the in-process and Redis-backed implementations of
// the currency snapshot cache.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/banking/pkg/domain/currency"
)

// MemoryCache implements cache.CurrencyCache with in-memory storage.
type MemoryCache struct {
	entries map[string]*cacheEntry
	mu      sync.RWMutex
}

type cacheEntry struct {
	snapshot  currency.Currency
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory currency cache with a background
// cleanup loop.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{entries: make(map[string]*cacheEntry)}
	go c.cleanup()
	return c
}

// Get returns the cached snapshot, or (nil, nil) on a miss or expired entry.
func (c *MemoryCache) Get(_ context.Context, key string) (*currency.Currency, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	snapshot := entry.snapshot
	return &snapshot, nil
}

// Set stores a snapshot with the given TTL.
func (c *MemoryCache) Set(_ context.Context, key string, cur *currency.Currency, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		snapshot:  *cur,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a snapshot.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// cleanup removes expired entries.
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.entries {
			if now.After(entry.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
