package telemetry

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"geo-pricing-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRecorderPublishesEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	sub := client.Subscribe(ctx, DefaultUsageChannel)
	t.Cleanup(func() { sub.Close() })

	// Wait for the subscription before publishing.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	recorder := NewRedisRecorder(client, "")
	event := ports.UsageEvent{
		ID:       "evt-1",
		Action:   ports.UsageActionGeocode,
		Metadata: map[string]string{"address": "123 main st"},
		At:       time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, recorder.Record(ctx, event))

	select {
	case msg := <-sub.Channel():
		var got ports.UsageEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		require.Equal(t, event, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no usage event published")
	}
}
