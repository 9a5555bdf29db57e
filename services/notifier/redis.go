package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"seatwise/models"
	"seatwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const channelPrefix = "reservations:events:"

// RedisNotifier implements ChangeNotifier on Redis pub/sub, one channel per
// provider. Redis pub/sub is fire-and-forget, which matches the contract:
// observers that miss an event converge on the next read anyway.
type RedisNotifier struct {
	Client *redis.Client
}

// NewRedisNotifier constructs a RedisNotifier.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{Client: client}
}

// Publish broadcasts a change event on the provider's channel.
func (n *RedisNotifier) Publish(ctx context.Context, providerID string, event models.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	if err := n.Client.Publish(ctx, channelPrefix+providerID, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// Subscribe opens a subscription on the provider's channel and bridges it to
// a typed event channel. Slow consumers drop events rather than block the
// pump; a dropped event only delays convergence until the next one.
func (n *RedisNotifier) Subscribe(ctx context.Context, providerID string) (<-chan models.ChangeEvent, func(), error) {
	pubsub := n.Client.Subscribe(ctx, channelPrefix+providerID)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to provider channel: %w", err)
	}

	events := make(chan models.ChangeEvent, 16)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event models.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				utils.GetLogger().Warn("discarding malformed change event",
					zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			select {
			case events <- event:
			default:
				utils.GetLogger().Warn("dropping change event for slow subscriber",
					zap.String("providerId", providerID))
			}
		}
	}()

	cancel := func() {
		_ = pubsub.Close()
	}
	return events, cancel, nil
}
