package cache

import (
	"context"
	"testing"
	"time"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"

	"github.com/stretchr/testify/require"
)

func TestMemoryGeocodeCache(t *testing.T) {
	c := NewMemoryGeocodeCache()
	ctx := context.Background()
	coords := domain.Coordinates{Latitude: 33.4484, Longitude: -112.0740}

	_, found, err := c.Get(ctx, "123 main st")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.Put(ctx, "123 main st", coords))

	got, found, err := c.Get(ctx, "123 main st")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, coords, got)
}

func TestMemoryDistanceCacheExpires(t *testing.T) {
	c := NewMemoryDistanceCache(15 * time.Minute)

	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	ctx := context.Background()
	results := []ports.DistanceResult{{DistanceMiles: 4.2, DurationMinutes: 11}}
	require.NoError(t, c.Put(ctx, "batch", results))

	got, found, err := c.Get(ctx, "batch")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, results, got)

	// Still fresh at the boundary.
	current = current.Add(15 * time.Minute)
	_, found, err = c.Get(ctx, "batch")
	require.NoError(t, err)
	require.True(t, found)

	// One tick past the TTL the entry is gone.
	current = current.Add(time.Second)
	_, found, err = c.Get(ctx, "batch")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryDistanceCacheDefaultTTL(t *testing.T) {
	c := NewMemoryDistanceCache(0)
	require.Equal(t, DefaultDistanceTTL, c.ttl)
}
