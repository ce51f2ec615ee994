package locations

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

const locationKeyPrefix = "geo:loc:"

// RedisStore keeps one user's resolved location in Redis as a JSON value.
// The server-side TTL matches FreshnessTTL, and Load re-checks ResolvedAt
// so a Redis instance without eviction still honors the freshness window.
type RedisStore struct {
	client    *redis.Client
	sessionID string
	now       func() time.Time
}

// NewRedisStore scopes the stored location to one session or user ID.
func NewRedisStore(client *redis.Client, sessionID string) *RedisStore {
	return &RedisStore{client: client, sessionID: sessionID, now: time.Now}
}

func (s *RedisStore) key() string {
	return locationKeyPrefix + s.sessionID
}

func (s *RedisStore) Save(ctx context.Context, coords domain.Coordinates, address string) error {
	record := ports.StoredUserLocation{
		Coordinates: coords,
		Address:     address,
		ResolvedAt:  s.now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal stored location: %w", err)
	}
	if err := s.client.Set(ctx, s.key(), data, FreshnessTTL).Err(); err != nil {
		return fmt.Errorf("save stored location: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (ports.StoredUserLocation, bool, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.StoredUserLocation{}, false, nil
	}
	if err != nil {
		return ports.StoredUserLocation{}, false, fmt.Errorf("load stored location: %w", err)
	}

	var record ports.StoredUserLocation
	if err := json.Unmarshal(data, &record); err != nil {
		return ports.StoredUserLocation{}, false, fmt.Errorf("unmarshal stored location: %w", err)
	}

	if s.now().Sub(record.ResolvedAt) > FreshnessTTL {
		if err := s.client.Del(ctx, s.key()).Err(); err != nil {
			return ports.StoredUserLocation{}, false, fmt.Errorf("purge stale location: %w", err)
		}
		return ports.StoredUserLocation{}, false, nil
	}

	return record, true, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("clear stored location: %w", err)
	}
	return nil
}
