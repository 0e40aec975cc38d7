package app

import (
	"context"
	"os"

	"devconnect_backend/internal/notification/domain"
	"devconnect_backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Log = logger.Initialize("notification_test", os.TempDir())
}

// MockNotificationRepository mock repository.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if n, ok := args.Get(0).(*domain.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool, page, limit int64) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID, unreadOnly, page, limit)
	if ns, ok := args.Get(0).([]domain.Notification); ok {
		return ns, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPusher mock the realtime publish seam
type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) EmitToRoom(ctx context.Context, room, event string, data interface{}) error {
	args := m.Called(ctx, room, event, data)
	return args.Error(0)
}
