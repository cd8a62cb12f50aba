// Package cache provides the in-memory, tenant-scoped image cache behind
// the inspector endpoints. Entries are invalidated manually (per tenant or
// wholesale); there is no TTL and no eviction policy.
package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/andinpos/site-gateway/internal/domain"
)

type imageEntry struct {
	payload  json.RawMessage
	size     int64
	storedAt int64 // unix milliseconds
}

type tenantKey struct {
	tenant string
	key    string
}

// ImageCache is a thread-safe image cache with per-tenant invalidation and
// read-side inventory statistics.
type ImageCache struct {
	mu    sync.RWMutex
	items map[tenantKey]imageEntry
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{items: make(map[tenantKey]imageEntry)}
}

// Get retrieves a cached payload. Returns false on a miss.
func (c *ImageCache) Get(tenantID, key string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[tenantKey{tenantID, key}]
	if !ok {
		return nil, false
	}
	return e.payload, true
}

// Set stores a payload for a tenant, stamping it with the current time.
func (c *ImageCache) Set(tenantID, key string, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[tenantKey{tenantID, key}] = imageEntry{
		payload:  payload,
		size:     int64(len(payload)),
		storedAt: time.Now().UnixMilli(),
	}
}

// Stats scans all entries and returns count, approximate total size, and
// the oldest/newest stored-at timestamps. All fields are zero when empty.
func (c *ImageCache) Stats() domain.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var stats domain.CacheStats
	for _, e := range c.items {
		stats.TotalKeys++
		stats.TotalSize += e.size
		if stats.OldestEntry == 0 || e.storedAt < stats.OldestEntry {
			stats.OldestEntry = e.storedAt
		}
		if e.storedAt > stats.NewestEntry {
			stats.NewestEntry = e.storedAt
		}
	}
	return stats
}

// Clear removes every entry belonging to tenantID and reports how many
// entries were removed. Other tenants' entries are untouched.
func (c *ImageCache) Clear(tenantID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.items {
		if k.tenant == tenantID {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// ClearAll removes every entry regardless of tenant.
func (c *ImageCache) ClearAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.items)
	c.items = make(map[tenantKey]imageEntry)
	return removed
}
