package ports

import (
	"context"
	"time"

	"geo-pricing-service/internal/domain"
)

// StoredUserLocation is the most recently resolved end-user location.
type StoredUserLocation struct {
	Coordinates domain.Coordinates `json:"coordinates"`
	Address     string             `json:"address,omitempty"`
	ResolvedAt  time.Time          `json:"resolved_at"`
}

// LocationStore keeps the last resolved user location for reuse across a
// session. Records older than the store's freshness TTL (one hour) are
// treated as absent.
type LocationStore interface {
	// Save persists the location with the current timestamp, overwriting
	// any previous record.
	Save(ctx context.Context, coords domain.Coordinates, address string) error

	// Load returns the stored location, or found=false when nothing was
	// saved or the record has gone stale (stale records are purged).
	Load(ctx context.Context) (StoredUserLocation, bool, error)

	// Clear purges the stored location explicitly.
	Clear(ctx context.Context) error
}
