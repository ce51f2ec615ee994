package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Redis key prefixes, one namespace per cache.
const (
	geocodeKeyPrefix  = "geo:addr:"
	distanceKeyPrefix = "geo:dist:"
)

// RedisGeocodeCache stores geocode results as JSON values without
// expiration, shared across service instances.
type RedisGeocodeCache struct {
	client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client}
}

func (c *RedisGeocodeCache) Get(ctx context.Context, key string) (domain.Coordinates, bool, error) {
	data, err := c.client.Get(ctx, geocodeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redis geocode get: %w", err)
	}

	var coords domain.Coordinates
	if err := json.Unmarshal(data, &coords); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redis geocode unmarshal: %w", err)
	}
	return coords, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, key string, coords domain.Coordinates) error {
	data, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("redis geocode marshal: %w", err)
	}
	if err := c.client.Set(ctx, geocodeKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis geocode set: %w", err)
	}
	return nil
}

// RedisDistanceCache stores whole distance batches as JSON values with a
// server-side TTL.
type RedisDistanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDistanceCache(client *redis.Client, ttl time.Duration) *RedisDistanceCache {
	if ttl <= 0 {
		ttl = DefaultDistanceTTL
	}
	return &RedisDistanceCache{client: client, ttl: ttl}
}

func (c *RedisDistanceCache) Get(ctx context.Context, key string) ([]ports.DistanceResult, bool, error) {
	data, err := c.client.Get(ctx, distanceKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis distance get: %w", err)
	}

	var results []ports.DistanceResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false, fmt.Errorf("redis distance unmarshal: %w", err)
	}
	return results, true, nil
}

func (c *RedisDistanceCache) Put(ctx context.Context, key string, results []ports.DistanceResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("redis distance marshal: %w", err)
	}
	if err := c.client.Set(ctx, distanceKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis distance set: %w", err)
	}
	return nil
}
