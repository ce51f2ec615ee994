package telemetry

import (
	"context"
	"encoding/json"
	"fmt"

	"geo-pricing-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultUsageChannel is the pub/sub channel usage events are published to.
const DefaultUsageChannel = "geo:usage"

// RedisRecorder publishes usage events to a Redis pub/sub channel so
// billing and quota dashboards can consume them without touching the
// request path. Delivery is fire-and-forget.
type RedisRecorder struct {
	client  *redis.Client
	channel string
}

func NewRedisRecorder(client *redis.Client, channel string) *RedisRecorder {
	if channel == "" {
		channel = DefaultUsageChannel
	}
	return &RedisRecorder{client: client, channel: channel}
}

func (r *RedisRecorder) Record(ctx context.Context, event ports.UsageEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal usage event: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("publish usage event: %w", err)
	}
	return nil
}
