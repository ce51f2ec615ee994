package locations

import (
	"context"
	"testing"
	"time"

	"geo-pricing-service/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
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
	require.False(t, rec.ResolvedAt.IsZero())

	require.NoError(t, s.Clear(ctx))

	_, found, err = s.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStorePurgesStaleOnLoad(t *testing.T) {
	s := NewMemoryStore()
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, domain.Coordinates{Latitude: 1, Longitude: 2}, ""))

	// Fresh just inside the window.
	current = current.Add(FreshnessTTL)
	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)

	// One tick past and the record is purged for good.
	current = current.Add(time.Second)
	_, found, err = s.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)

	// Even rolling the clock back does not revive it.
	current = current.Add(-FreshnessTTL)
	_, found, err = s.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreSaveRefreshesTimestamp(t *testing.T) {
	s := NewMemoryStore()
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, domain.Coordinates{Latitude: 1, Longitude: 2}, ""))

	current = current.Add(45 * time.Minute)
	require.NoError(t, s.Save(ctx, domain.Coordinates{Latitude: 3, Longitude: 4}, ""))

	current = current.Add(45 * time.Minute)
	rec, found, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 3.0, rec.Coordinates.Latitude)
}
