package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"devconnect_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Log = logger.Initialize("cache_test", os.TempDir())
}

type memoryBackend struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{data: make(map[string]string)}
}

func (b *memoryBackend) Get(ctx context.Context, key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	val, ok := b.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return val, nil
}

func (b *memoryBackend) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
	return nil
}

func (b *memoryBackend) Del(ctx context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, key := range keys {
		delete(b.data, key)
	}
	return nil
}

func (b *memoryBackend) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range b.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// failingBackend every call errors, standing in for a dead redis
type failingBackend struct{}

func (failingBackend) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}

func (failingBackend) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return errors.New("connection refused")
}

func (failingBackend) Del(ctx context.Context, keys ...string) error {
	return errors.New("connection refused")
}

func (failingBackend) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	return nil, errors.New("connection refused")
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestService_SetGetRoundTrip(t *testing.T) {
	svc := NewService(newMemoryBackend())
	ctx := context.Background()

	svc.Set(ctx, "post:1", payload{Name: "hello", Count: 3}, time.Minute)

	var got payload
	assert.True(t, svc.Get(ctx, "post:1", &got))
	assert.Equal(t, "hello", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestService_MissReportsFalse(t *testing.T) {
	svc := NewService(newMemoryBackend())

	var got payload
	assert.False(t, svc.Get(context.Background(), "absent", &got))
}

func TestService_BackendFailureDegradesToMiss(t *testing.T) {
	svc := NewService(failingBackend{})
	ctx := context.Background()

	var got payload
	assert.False(t, svc.Get(ctx, "post:1", &got))

	// writes and invalidations must not panic either
	svc.Set(ctx, "post:1", payload{}, time.Minute)
	svc.Delete(ctx, "post:1")
	svc.DeletePattern(ctx, "posts:list")
}

func TestService_DeletePatternOnlyHitsPrefix(t *testing.T) {
	backend := newMemoryBackend()
	svc := NewService(backend)
	ctx := context.Background()

	svc.Set(ctx, "posts:list:page=1", payload{}, time.Minute)
	svc.Set(ctx, "posts:list:page=2", payload{}, time.Minute)
	svc.Set(ctx, "post:1", payload{Name: "keep"}, time.Minute)

	svc.DeletePattern(ctx, "posts:list")

	var got payload
	assert.False(t, svc.Get(ctx, "posts:list:page=1", &got))
	assert.False(t, svc.Get(ctx, "posts:list:page=2", &got))
	assert.True(t, svc.Get(ctx, "post:1", &got))
}

func TestService_DeletePatternNoMatchesIsFine(t *testing.T) {
	svc := NewService(newMemoryBackend())
	svc.DeletePattern(context.Background(), "nothing:here")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "post:abc", Key("post", "abc"))
	assert.Equal(t, "presence:u:1", Key("presence", "u", "1"))
}

func TestQueryKey_DeterministicAndSkipsEmpty(t *testing.T) {
	a := QueryKey("posts:list", map[string]string{"page": "1", "tag": "go", "author": ""})
	b := QueryKey("posts:list", map[string]string{"tag": "go", "page": "1"})
	assert.Equal(t, a, b)
	assert.Equal(t, "posts:list:page=1:tag=go", a)
}
