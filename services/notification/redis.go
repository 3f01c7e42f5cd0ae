package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisPublisher fans events out over Redis pub/sub channels. Real-time
// consumers (chat/notification gateways) subscribe to the topic channels.
type RedisPublisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPublisher creates an EventPublisher backed by Redis pub/sub.
func NewRedisPublisher(client *redis.Client, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, logger: logger}
}

type event struct {
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload"`
	EmittedAt time.Time   `json:"emittedAt"`
}

// Publish marshals the payload and publishes it on the topic channel.
func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	b, err := json.Marshal(event{Topic: topic, Payload: payload, EmittedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to marshal event for %s: %w", topic, err)
	}
	if err := p.client.Publish(ctx, topic, b).Err(); err != nil {
		p.logger.Warn("event publish failed", zap.String("topic", topic), zap.Error(err))
		return fmt.Errorf("failed to publish event on %s: %w", topic, err)
	}
	return nil
}
