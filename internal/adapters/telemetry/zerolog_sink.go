package telemetry

import (
	"context"

	"geo-pricing-service/internal/ports"

	"github.com/rs/zerolog"
)

// LogRecorder writes usage events to the structured log. The default sink
// when no event transport is configured.
type LogRecorder struct {
	log zerolog.Logger
}

func NewLogRecorder(log zerolog.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

func (r *LogRecorder) Record(ctx context.Context, event ports.UsageEvent) error {
	r.log.Info().
		Str("event_id", event.ID).
		Str("action", event.Action).
		Fields(map[string]interface{}{"metadata": event.Metadata}).
		Time("at", event.At).
		Msg("provider usage")
	return nil
}
