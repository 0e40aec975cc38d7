package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"devconnect_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss key not present in the cache backend
var ErrCacheMiss = errors.New("cache miss")

// Backend is the raw key/value surface the Service runs on.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
}

type redisBackend struct {
	client *redis.Client
}

// NewRedisBackend wrap a redis client as a cache Backend
func NewRedisBackend(client *redis.Client) Backend {
	return &redisBackend{client: client}
}

func (b *redisBackend) Get(ctx context.Context, key string) (string, error) {
	val, err := b.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	return val, err
}

func (b *redisBackend) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

func (b *redisBackend) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.client.Del(ctx, keys...).Err()
}

func (b *redisBackend) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := b.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Service cache-aside layer. Every backend failure is logged and
// degraded: Get becomes a miss, Set/Delete/DeletePattern become
// no-ops. Callers always keep the source of truth working.
type Service struct {
	backend Backend
}

// NewService create the cache Service
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Get load key into out, report whether it was a hit.
func (s *Service) Get(ctx context.Context, key string, out interface{}) bool {
	val, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Log.Warn(fmt.Sprintf("cache get degraded for %s: %v", key, err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(val), out); err != nil {
		logger.Log.Warn(fmt.Sprintf("cache entry %s unmarshal failed: %v", key, err))
		return false
	}
	return true
}

// Set store value under key with ttl
func (s *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Log.Warn(fmt.Sprintf("cache set %s marshal failed: %v", key, err))
		return
	}
	if err := s.backend.Set(ctx, key, string(data), ttl); err != nil {
		logger.Log.Warn(fmt.Sprintf("cache set degraded for %s: %v", key, err))
	}
}

// Delete remove specific keys
func (s *Service) Delete(ctx context.Context, keys ...string) {
	if err := s.backend.Del(ctx, keys...); err != nil {
		logger.Log.Warn(fmt.Sprintf("cache delete degraded for %v: %v", keys, err))
	}
}

// DeletePattern remove every key under prefix. Matching nothing is
// a success, not an error.
func (s *Service) DeletePattern(ctx context.Context, prefix string) {
	keys, err := s.backend.ScanKeys(ctx, prefix+"*")
	if err != nil {
		logger.Log.Warn(fmt.Sprintf("cache scan degraded for %s: %v", prefix, err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.backend.Del(ctx, keys...); err != nil {
		logger.Log.Warn(fmt.Sprintf("cache pattern delete degraded for %s: %v", prefix, err))
	}
}
