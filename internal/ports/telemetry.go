package ports

import (
	"context"
	"time"
)

// Usage event actions, one per provider call type.
const (
	UsageActionGeocode  = "geocode"
	UsageActionDistance = "distance"
)

// UsageEvent describes one successful outbound provider call.
type UsageEvent struct {
	ID       string            `json:"id"`
	Action   string            `json:"action"`
	Metadata map[string]string `json:"metadata,omitempty"`
	At       time.Time         `json:"at"`
}

// UsageRecorder is a best-effort telemetry sink. A failed Record must never
// affect the primary result; callers log and move on.
type UsageRecorder interface {
	Record(ctx context.Context, event UsageEvent) error
}
