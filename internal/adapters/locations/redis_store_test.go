package locations

import (
	"context"
	"testing"
	"time"

	"geo-pricing-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, sessionID string) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisStore(client, sessionID)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, s := newTestRedisStore(t, "session-1")
	ctx := context.Background()
	coords := domain.Coordinates{Latitude: 33.4484, Longitude: -112.0740}

	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Save(ctx, coords, "123 Main St"))

	rec, found, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, coords, rec.Coordinates)
	require.Equal(t, "123 Main St", rec.Address)

	require.NoError(t, s.Clear(ctx))

	_, found, err = s.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRedisStoreSessionsAreIsolated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	a := NewRedisStore(client, "session-a")
	b := NewRedisStore(client, "session-b")
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, domain.Coordinates{Latitude: 1, Longitude: 2}, ""))

	_, found, err := b.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRedisStoreServerTTL(t *testing.T) {
	mr, s := newTestRedisStore(t, "session-1")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, domain.Coordinates{Latitude: 1, Longitude: 2}, ""))

	mr.FastForward(FreshnessTTL + time.Minute)

	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRedisStorePurgesStaleRecord(t *testing.T) {
	// Redis kept the key (no eviction) but the record itself is stale.
	mr, s := newTestRedisStore(t, "session-1")
	ctx := context.Background()

	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	require.NoError(t, s.Save(ctx, domain.Coordinates{Latitude: 1, Longitude: 2}, ""))

	current = current.Add(FreshnessTTL + time.Second)

	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
	require.False(t, mr.Exists("geo:loc:session-1"))
}
