package cache

import (
	"context"
	"sync"
	"time"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
)

// DefaultDistanceTTL bounds how long a distance batch stays fresh.
// Traffic conditions change; geocode results do not.
const DefaultDistanceTTL = 15 * time.Minute

// MemoryGeocodeCache is a mutex-guarded in-process geocode cache with
// process-lifetime entries.
type MemoryGeocodeCache struct {
	mu      sync.Mutex
	entries map[string]domain.Coordinates
}

func NewMemoryGeocodeCache() *MemoryGeocodeCache {
	return &MemoryGeocodeCache{entries: make(map[string]domain.Coordinates)}
}

func (c *MemoryGeocodeCache) Get(ctx context.Context, key string) (domain.Coordinates, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	coords, ok := c.entries[key]
	return coords, ok, nil
}

func (c *MemoryGeocodeCache) Put(ctx context.Context, key string, coords domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = coords
	return nil
}

type distanceEntry struct {
	results    []ports.DistanceResult
	insertedAt time.Time
}

// MemoryDistanceCache is a mutex-guarded in-process distance cache.
// Entries expire after ttl; expired entries are dropped on read.
type MemoryDistanceCache struct {
	mu      sync.Mutex
	entries map[string]distanceEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryDistanceCache(ttl time.Duration) *MemoryDistanceCache {
	if ttl <= 0 {
		ttl = DefaultDistanceTTL
	}
	return &MemoryDistanceCache{
		entries: make(map[string]distanceEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryDistanceCache) Get(ctx context.Context, key string) ([]ports.DistanceResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.now().Sub(entry.insertedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false, nil
	}
	return entry.results, true, nil
}

func (c *MemoryDistanceCache) Put(ctx context.Context, key string, results []ports.DistanceResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = distanceEntry{results: results, insertedAt: c.now()}
	return nil
}
