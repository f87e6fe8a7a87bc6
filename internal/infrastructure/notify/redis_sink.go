package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/ledgerbook/backend/internal/infrastructure/config"
)

// RedisSink publishes notifications to a Redis pub/sub channel
type RedisSink struct {
	client  *redis.Client
	channel string
}

// NewRedisSink creates a RedisSink from configuration
func NewRedisSink(cfg *config.RedisConfig, channel string) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisSink{client: client, channel: channel}
}

// Send publishes the notification as JSON to the configured channel
func (s *RedisSink) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection
func (s *RedisSink) Close() error {
	return s.client.Close()
}

var _ Sink = (*RedisSink)(nil)
