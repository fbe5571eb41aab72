package library

import (
	"sync"
	"time"

	"github.com/akari-dl/hondana/internal/models"
)

// DefaultCacheTTL bounds how stale a served listing may be.
const DefaultCacheTTL = 300 * time.Second

// Cache holds the most recent merged library scan. It is a disposable
// projection: never persisted, safe to discard at any time.
type Cache struct {
	mu          sync.Mutex
	data        []*models.Manga
	lastUpdated time.Time
	ttl         time.Duration
}

// NewCache creates a cache with the given TTL. A non-positive TTL
// falls back to DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{ttl: ttl}
}

// Get returns the cached listing only while it is fresh: non-empty and
// younger than the TTL.
func (c *Cache) Get() ([]*models.Manga, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.data) == 0 || c.lastUpdated.IsZero() {
		return nil, false
	}
	if time.Since(c.lastUpdated) >= c.ttl {
		return nil, false
	}
	return c.data, true
}

// Set replaces the cached listing and resets its timestamp to now.
func (c *Cache) Set(data []*models.Manga) {
	c.mu.Lock()
	c.data = data
	c.lastUpdated = time.Now()
	c.mu.Unlock()
}

// Clear forces the next Get to miss regardless of age.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.data = nil
	c.lastUpdated = time.Time{}
	c.mu.Unlock()
}
