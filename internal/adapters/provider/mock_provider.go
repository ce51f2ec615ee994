package provider

import (
	"context"
	"fmt"
	"math"
	"sync"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
)

// MockMapProvider is a scripted in-memory ports.MapProvider for tests and
// local development without a provider account.
type MockMapProvider struct {
	mu sync.Mutex

	// Addresses maps normalized address keys to coordinates.
	Addresses map[string]domain.Coordinates

	// GeocodeErr, when set, fails every Geocode call.
	GeocodeErr error

	// MatrixFunc, when set, replaces the default straight-line matrix.
	MatrixFunc func(origin domain.Coordinates, destinations []domain.Coordinates) ([]ports.MatrixElement, error)

	GeocodeCalls int
	MatrixCalls  int
}

func NewMockMapProvider(addresses map[string]domain.Coordinates) *MockMapProvider {
	return &MockMapProvider{Addresses: addresses}
}

func (m *MockMapProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GeocodeCalls++
	if m.GeocodeErr != nil {
		return domain.Coordinates{}, m.GeocodeErr
	}

	coords, ok := m.Addresses[domain.NormalizeAddress(address)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("no results for %q", address)
	}
	return coords, nil
}

func (m *MockMapProvider) DistanceMatrix(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]ports.MatrixElement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MatrixCalls++
	if m.MatrixFunc != nil {
		return m.MatrixFunc(origin, destinations)
	}

	// Default: equirectangular straight line, close enough for test data.
	out := make([]ports.MatrixElement, len(destinations))
	for i, d := range destinations {
		dLat := (d.Latitude - origin.Latitude) * 69.0
		dLon := (d.Longitude - origin.Longitude) * 53.0
		miles := math.Sqrt(dLat*dLat + dLon*dLon)
		out[i] = ports.MatrixElement{
			DistanceMiles:   miles,
			DurationMinutes: miles * 2,
			OK:              true,
		}
	}
	return out, nil
}
