package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"devconnect_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisPubSub cross-instance message relay over redis channels.
type RedisPubSub struct {
	client *redis.Client
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{client: client}
}

// Publish serialize message and publish it on channel. Errors
// propagate to the caller, a failed publish means a dropped event.
func (r *RedisPubSub) Publish(ctx context.Context, channel string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal bus message: %w", err)
	}
	return r.client.Publish(ctx, channel, data).Err()
}

// Subscribe register handler for every payload received on channel.
// The subscription is confirmed before returning and stays alive
// until ctx is cancelled.
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error {
	sub := r.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", channel, err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				handler([]byte(m.Payload))
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				return
			}
		}
	}()
	return nil
}
