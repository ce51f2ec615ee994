package services

import (
	"context"
	"fmt"
	"sort"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"

	"github.com/rs/zerolog"
)

// Quote is the priced outcome of a single origin/destination resolution.
type Quote struct {
	Fee             float64 `json:"fee"`
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// StoreCandidate is a store considered for a nearby search.
type StoreCandidate struct {
	ID          string             `json:"id"`
	Coordinates domain.Coordinates `json:"coordinates"`
}

// NearbyStore is one in-range result of a nearby search.
type NearbyStore struct {
	ID            string  `json:"id"`
	DistanceMiles float64 `json:"distance_miles"`
}

// Engine composes the resolvers, the fee calculator, and the location
// store into the operations the rest of the system consumes. One Engine
// instance owns its cache and limiter state; nothing is ambient.
type Engine struct {
	geocodes  *GeocodeResolver
	distances *DistanceResolver
	locations ports.LocationStore
	log       zerolog.Logger
}

func NewEngine(
	geocodes *GeocodeResolver,
	distances *DistanceResolver,
	locations ports.LocationStore,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		geocodes:  geocodes,
		distances: distances,
		locations: locations,
		log:       log,
	}
}

// QuoteForAddresses geocodes both sides, resolves the travel distance, and
// computes the delivery fee under the given policy.
//
// Empty addresses fail with domain.ErrInvalidInput. Geocoding failures
// propagate rather than guessing: there is no fallback geocoder, and the
// caller needs to ask the user to re-enter the address.
func (e *Engine) QuoteForAddresses(
	ctx context.Context,
	originAddress string,
	destinationAddress string,
	policy domain.PricingPolicy,
) (Quote, error) {
	if domain.NormalizeAddress(originAddress) == "" || domain.NormalizeAddress(destinationAddress) == "" {
		return Quote{}, fmt.Errorf("%w: origin and destination addresses are required", domain.ErrInvalidInput)
	}

	origin, err := e.geocodes.Resolve(ctx, originAddress)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: resolve origin: %w", err)
	}

	destination, err := e.geocodes.Resolve(ctx, destinationAddress)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: resolve destination: %w", err)
	}

	return e.QuoteForCoordinates(ctx, origin, destination, policy)
}

// QuoteForCoordinates prices a pair that is already resolved.
func (e *Engine) QuoteForCoordinates(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	policy domain.PricingPolicy,
) (Quote, error) {
	results, err := e.distances.Resolve(ctx, origin, []domain.Coordinates{destination})
	if err != nil {
		return Quote{}, fmt.Errorf("quote: resolve distance: %w", err)
	}

	r := results[0]
	return Quote{
		Fee:             ComputeFee(r.DistanceMiles, policy),
		DistanceMiles:   r.DistanceMiles,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// NearbyStores resolves distances to all candidates in one batch call,
// filters by maxDistanceMiles, and sorts ascending by distance. Ties keep
// the original input order.
func (e *Engine) NearbyStores(
	ctx context.Context,
	user domain.Coordinates,
	candidates []StoreCandidate,
	maxDistanceMiles float64,
) ([]NearbyStore, error) {
	destinations := make([]domain.Coordinates, 0, len(candidates))
	for _, c := range candidates {
		destinations = append(destinations, c.Coordinates)
	}

	results, err := e.distances.Resolve(ctx, user, destinations)
	if err != nil {
		return nil, fmt.Errorf("nearby stores: %w", err)
	}

	nearby := make([]NearbyStore, 0, len(candidates))
	for i, c := range candidates {
		d := results[i].DistanceMiles
		if d <= maxDistanceMiles {
			nearby = append(nearby, NearbyStore{ID: c.ID, DistanceMiles: d})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceMiles < nearby[j].DistanceMiles
	})

	return nearby, nil
}

// SaveUserLocation persists the resolved user location for session reuse.
func (e *Engine) SaveUserLocation(ctx context.Context, coords domain.Coordinates, address string) error {
	if err := coords.Validate(); err != nil {
		return fmt.Errorf("save user location: %w", err)
	}
	return e.locations.Save(ctx, coords, address)
}

// UserLocation returns the stored user location, if still fresh.
func (e *Engine) UserLocation(ctx context.Context) (ports.StoredUserLocation, bool, error) {
	return e.locations.Load(ctx)
}

// ClearUserLocation drops the stored user location.
func (e *Engine) ClearUserLocation(ctx context.Context) error {
	return e.locations.Clear(ctx)
}
