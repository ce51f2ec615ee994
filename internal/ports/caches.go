package ports

import (
	"context"

	"geo-pricing-service/internal/domain"
)

// GeocodeCache maps normalized address keys to coordinates. Entries do not
// expire: addresses do not move within a deployment's lifetime.
type GeocodeCache interface {
	Get(ctx context.Context, key string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, key string, coords domain.Coordinates) error
}

// DistanceCache stores whole distance-matrix batches under a key built from
// the origin and the ordered destination list. Implementations should expire
// entries (traffic conditions change); partial-batch reuse is not supported.
type DistanceCache interface {
	Get(ctx context.Context, key string) ([]DistanceResult, bool, error)
	Put(ctx context.Context, key string, results []DistanceResult) error
}
