package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/platform/obs"
	"geo-pricing-service/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultProviderTimeout = 5 * time.Second

// DistanceResolver maps one origin and a list of destinations to one
// DistanceResult per destination: cache-first, rate-limited,
// provider-backed, with a haversine fallback on any provider failure.
//
// Fee computation must never block on a third-party outage, so the only
// errors Resolve returns are input validation failures. Rate-limit denials,
// provider errors, and timeouts all degrade silently to the estimate.
type DistanceResolver struct {
	provider ports.DistanceMatrixProvider
	cache    ports.DistanceCache
	limiter  *SlidingWindowLimiter
	usage    ports.UsageRecorder
	log      zerolog.Logger
	timeout  time.Duration
}

func NewDistanceResolver(
	provider ports.DistanceMatrixProvider,
	cache ports.DistanceCache,
	limiter *SlidingWindowLimiter,
	usage ports.UsageRecorder,
	log zerolog.Logger,
) *DistanceResolver {
	return &DistanceResolver{
		provider: provider,
		cache:    cache,
		limiter:  limiter,
		usage:    usage,
		log:      log,
		timeout:  defaultProviderTimeout,
	}
}

// Resolve returns one result per destination, same length and order as the
// input. The batch is cached and looked up as a whole; there is no
// partial-batch reuse.
func (r *DistanceResolver) Resolve(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []ports.DistanceResult, err error) {
	defer obs.Time(r.log, "distance.resolve")(&err)

	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("resolve distance: origin: %w", err)
	}
	for i, d := range destinations {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("resolve distance: destination %d: %w", i, err)
		}
	}

	if len(destinations) == 0 {
		return []ports.DistanceResult{}, nil
	}

	key := batchKey(origin, destinations)

	if results, ok := r.cacheGet(ctx, key); ok && len(results) == len(destinations) {
		return results, nil
	}

	if !r.limiter.TryAcquire(BucketDistance) {
		r.log.Debug().Str("key", key).Msg("distance quota exhausted, using haversine fallback")
		return r.fallback(origin, destinations), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	elements, err := r.provider.DistanceMatrix(callCtx, origin, destinations)
	if err != nil || len(elements) != len(destinations) {
		r.log.Warn().Err(err).Str("key", key).Msg("distance matrix call failed, using haversine fallback")
		return r.fallback(origin, destinations), nil
	}

	// Failed elements inside a successful batch degrade to the estimate for
	// that element only, never to a zero-mile result.
	estimated := false
	results := make([]ports.DistanceResult, len(destinations))
	for i, el := range elements {
		if !el.OK || el.DistanceMiles < 0 || el.DurationMinutes < 0 {
			results[i] = estimate(origin, destinations[i])
			estimated = true
			continue
		}
		results[i] = ports.DistanceResult{
			DistanceMiles:   el.DistanceMiles,
			DurationMinutes: el.DurationMinutes,
		}
	}

	// A batch containing estimates is served but not cached, so the provider
	// is retried as soon as the next call comes in.
	if !estimated {
		if err := r.cache.Put(ctx, key, results); err != nil {
			r.log.Warn().Err(err).Str("key", key).Msg("distance cache write failed")
		}
	}

	r.recordUsage(ctx, map[string]string{
		"origin":       origin.Key(),
		"destinations": fmt.Sprintf("%d", len(destinations)),
	})

	return results, nil
}

// fallback computes the whole batch analytically. Fallback results are not
// cached: the next call should try the provider again.
func (r *DistanceResolver) fallback(origin domain.Coordinates, destinations []domain.Coordinates) []ports.DistanceResult {
	results := make([]ports.DistanceResult, len(destinations))
	for i, d := range destinations {
		results[i] = estimate(origin, d)
	}
	return results
}

func estimate(origin, destination domain.Coordinates) ports.DistanceResult {
	miles := Haversine(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)
	return ports.DistanceResult{
		DistanceMiles:   miles,
		DurationMinutes: EstimateDuration(miles),
	}
}

func (r *DistanceResolver) cacheGet(ctx context.Context, key string) ([]ports.DistanceResult, bool) {
	results, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("distance cache read failed")
		return nil, false
	}
	return results, ok
}

func (r *DistanceResolver) recordUsage(ctx context.Context, metadata map[string]string) {
	if r.usage == nil {
		return
	}

	event := ports.UsageEvent{
		ID:       uuid.NewString(),
		Action:   ports.UsageActionDistance,
		Metadata: metadata,
		At:       time.Now().UTC(),
	}
	if err := r.usage.Record(ctx, event); err != nil {
		r.log.Debug().Err(err).Msg("usage event dropped")
	}
}

// batchKey serializes the origin plus the ordered destination list.
func batchKey(origin domain.Coordinates, destinations []domain.Coordinates) string {
	var b strings.Builder
	b.WriteString(origin.Key())
	for _, d := range destinations {
		b.WriteByte('|')
		b.WriteString(d.Key())
	}
	return b.String()
}
