package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devconnect_backend/internal/realtime/domain"

	"github.com/go-redis/redis/v8"
)

const (
	presenceKeyPrefix = "presence:"
	onlineSetKey      = "online_users"
)

// PresenceRepository definition presence record + online set store
type PresenceRepository interface {
	// SetRecord write the presence record with a liveness TTL
	SetRecord(ctx context.Context, rec *domain.PresenceRecord, ttl time.Duration) error
	// GetRecord load the record, nil when absent or expired
	GetRecord(ctx context.Context, userID string) (*domain.PresenceRecord, error)
	// HasRecord check the record still exists
	HasRecord(ctx context.Context, userID string) (bool, error)
	// RefreshTTL extend the record TTL, no-op when the record is gone
	RefreshTTL(ctx context.Context, userID string, ttl time.Duration) error
	// AddOnline add the user to the online set
	AddOnline(ctx context.Context, userID string) error
	// RemoveOnline remove the user from the online set
	RemoveOnline(ctx context.Context, userID string) error
	// OnlineMembers list the online set
	OnlineMembers(ctx context.Context) ([]string, error)
}

type redisPresenceRepository struct {
	client *redis.Client
}

// NewRedisPresenceRepository create a redis backed PresenceRepository
func NewRedisPresenceRepository(client *redis.Client) PresenceRepository {
	return &redisPresenceRepository{client: client}
}

func (r *redisPresenceRepository) SetRecord(ctx context.Context, rec *domain.PresenceRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal presence record: %w", err)
	}
	return r.client.Set(ctx, presenceKeyPrefix+rec.UserID, data, ttl).Err()
}

func (r *redisPresenceRepository) GetRecord(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	val, err := r.client.Get(ctx, presenceKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get presence record: %w", err)
	}

	var rec domain.PresenceRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal presence record: %w", err)
	}
	return &rec, nil
}

func (r *redisPresenceRepository) HasRecord(ctx context.Context, userID string) (bool, error) {
	n, err := r.client.Exists(ctx, presenceKeyPrefix+userID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check presence record: %w", err)
	}
	return n > 0, nil
}

func (r *redisPresenceRepository) RefreshTTL(ctx context.Context, userID string, ttl time.Duration) error {
	// Expire returns false when the key is gone, which is fine here
	return r.client.Expire(ctx, presenceKeyPrefix+userID, ttl).Err()
}

func (r *redisPresenceRepository) AddOnline(ctx context.Context, userID string) error {
	return r.client.SAdd(ctx, onlineSetKey, userID).Err()
}

func (r *redisPresenceRepository) RemoveOnline(ctx context.Context, userID string) error {
	return r.client.SRem(ctx, onlineSetKey, userID).Err()
}

func (r *redisPresenceRepository) OnlineMembers(ctx context.Context) ([]string, error) {
	members, err := r.client.SMembers(ctx, onlineSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get online set: %w", err)
	}
	return members, nil
}
