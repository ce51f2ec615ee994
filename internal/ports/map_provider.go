package ports

import (
	"context"

	"geo-pricing-service/internal/domain"
)

// Travel distance and duration for one origin/destination pair.
// Units are miles and minutes throughout the service.
type DistanceResult struct {
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// One element of a distance-matrix response. OK is false when the provider
// could not route this pair even though the batch call itself succeeded.
type MatrixElement struct {
	DistanceMiles   float64
	DurationMinutes float64
	OK              bool
}

// Contract for resolving a postal address to coordinates.
type Geocoder interface {
	// Geocode returns the provider's best match for the address.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Contract for resolving travel distances from one origin to many
// destinations in a single provider call.
type DistanceMatrixProvider interface {
	// DistanceMatrix returns one element per destination, same order as the
	// input. Driving mode, imperial units.
	DistanceMatrix(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]MatrixElement, error)
}

// The two capabilities the engine needs from any mapping provider.
type MapProvider interface {
	Geocoder
	DistanceMatrixProvider
}
