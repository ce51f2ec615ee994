package services

import (
	"context"
	"fmt"
	"time"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/platform/obs"
	"geo-pricing-service/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// GeocodeResolver maps a postal address to coordinates: cache-first,
// rate-limited, provider-backed. There is no analytic fallback for address
// resolution, so provider failures propagate to the caller.
type GeocodeResolver struct {
	provider ports.Geocoder
	cache    ports.GeocodeCache
	limiter  *SlidingWindowLimiter
	usage    ports.UsageRecorder
	log      zerolog.Logger
	group    singleflight.Group
}

func NewGeocodeResolver(
	provider ports.Geocoder,
	cache ports.GeocodeCache,
	limiter *SlidingWindowLimiter,
	usage ports.UsageRecorder,
	log zerolog.Logger,
) *GeocodeResolver {
	return &GeocodeResolver{
		provider: provider,
		cache:    cache,
		limiter:  limiter,
		usage:    usage,
		log:      log,
	}
}

// Resolve returns coordinates for the address.
//
// Error contract: domain.ErrInvalidInput for an address that is empty after
// normalization, domain.ErrRateLimited on local admission denial, and
// domain.ErrProvider for provider failures or zero results. A cache hit
// consumes no rate-limit token. Ambiguous addresses resolve to the
// provider's first result.
func (r *GeocodeResolver) Resolve(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(r.log, "geocode.resolve")(&err)

	key := domain.NormalizeAddress(address)
	if key == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: address is empty", domain.ErrInvalidInput)
	}

	if coords, ok := r.cacheGet(ctx, key); ok {
		return coords, nil
	}

	// Concurrent lookups for the same key collapse into one provider call.
	v, err, _ := r.group.Do(key, func() (any, error) {
		if coords, ok := r.cacheGet(ctx, key); ok {
			return coords, nil
		}

		if !r.limiter.TryAcquire(BucketGeocode) {
			return domain.Coordinates{}, fmt.Errorf("%w: geocode quota exhausted", domain.ErrRateLimited)
		}

		coords, err := r.provider.Geocode(ctx, key)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("%w: geocode %q: %v", domain.ErrProvider, key, err)
		}
		if err := coords.Validate(); err != nil {
			return domain.Coordinates{}, fmt.Errorf("%w: geocode %q returned invalid coordinates", domain.ErrProvider, key)
		}

		if err := r.cache.Put(ctx, key, coords); err != nil {
			r.log.Warn().Err(err).Str("key", key).Msg("geocode cache write failed")
		}

		r.recordUsage(ctx, ports.UsageActionGeocode, map[string]string{"address": key})

		return coords, nil
	})
	if err != nil {
		return domain.Coordinates{}, err
	}

	return v.(domain.Coordinates), nil
}

// cacheGet treats cache errors as misses: a broken cache backend must not
// fail address resolution.
func (r *GeocodeResolver) cacheGet(ctx context.Context, key string) (domain.Coordinates, bool) {
	coords, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
		return domain.Coordinates{}, false
	}
	return coords, ok
}

func (r *GeocodeResolver) recordUsage(ctx context.Context, action string, metadata map[string]string) {
	if r.usage == nil {
		return
	}

	event := ports.UsageEvent{
		ID:       uuid.NewString(),
		Action:   action,
		Metadata: metadata,
		At:       time.Now().UTC(),
	}
	if err := r.usage.Record(ctx, event); err != nil {
		r.log.Debug().Err(err).Str("action", action).Msg("usage event dropped")
	}
}
