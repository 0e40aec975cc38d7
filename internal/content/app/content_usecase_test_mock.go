package app

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"devconnect_backend/internal/content/domain"
	notifdomain "devconnect_backend/internal/notification/domain"
	"devconnect_backend/pkg/cache"
	"devconnect_backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Log = logger.Initialize("content_test", os.TempDir())
}

// memoryBackend in-memory cache.Backend for exercising the real
// cache-aside path in tests
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
		return "", cache.ErrCacheMiss
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

func (b *memoryBackend) has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.data[key]
	return ok
}

// MockPostRepository mock repository.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if post, ok := args.Get(0).(*domain.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) Find(ctx context.Context, query domain.PostQuery) ([]domain.Post, int64, error) {
	args := m.Called(ctx, query)
	if posts, ok := args.Get(0).([]domain.Post); ok {
		return posts, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockPostRepository) Update(ctx context.Context, postID string, title, content string, tags []string) error {
	args := m.Called(ctx, postID, title, content, tags)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) AddLike(ctx context.Context, postID, memberID string) error {
	args := m.Called(ctx, postID, memberID)
	return args.Error(0)
}

func (m *MockPostRepository) RemoveLike(ctx context.Context, postID, memberID string) error {
	args := m.Called(ctx, postID, memberID)
	return args.Error(0)
}

func (m *MockPostRepository) AddBookmark(ctx context.Context, postID, memberID string) error {
	args := m.Called(ctx, postID, memberID)
	return args.Error(0)
}

func (m *MockPostRepository) RemoveBookmark(ctx context.Context, postID, memberID string) error {
	args := m.Called(ctx, postID, memberID)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementCommentCount(ctx context.Context, postID string, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

// MockCommentRepository mock repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Insert(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByPost(ctx context.Context, postID string, page, limit int64) ([]domain.Comment, error) {
	args := m.Called(ctx, postID, page, limit)
	if comments, ok := args.Get(0).([]domain.Comment); ok {
		return comments, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockIssueRepository mock repository.IssueRepository
type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) Insert(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) FindByID(ctx context.Context, issueID string) (*domain.Issue, error) {
	args := m.Called(ctx, issueID)
	if issue, ok := args.Get(0).(*domain.Issue); ok {
		return issue, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIssueRepository) FindByStatus(ctx context.Context, status domain.IssueStatus, page, limit int64) ([]domain.Issue, error) {
	args := m.Called(ctx, status, page, limit)
	if issues, ok := args.Get(0).([]domain.Issue); ok {
		return issues, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIssueRepository) Assign(ctx context.Context, issueID, assigneeID string) error {
	args := m.Called(ctx, issueID, assigneeID)
	return args.Error(0)
}

func (m *MockIssueRepository) Close(ctx context.Context, issueID string) error {
	args := m.Called(ctx, issueID)
	return args.Error(0)
}

// MockNotifier mock the notification seam
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Create(ctx context.Context, recipientID, actorID string, typ notifdomain.NotificationType, message string, resource *notifdomain.Resource) (*notifdomain.Notification, error) {
	args := m.Called(ctx, recipientID, actorID, typ, message, resource)
	if n, ok := args.Get(0).(*notifdomain.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMemberDirectory mock username resolution
type MockMemberDirectory struct {
	mock.Mock
}

func (m *MockMemberDirectory) FindIDsByUsernames(ctx context.Context, usernames []string) (map[string]string, error) {
	args := m.Called(ctx, usernames)
	if ids, ok := args.Get(0).(map[string]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}
