package app

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	chatdomain "devconnect_backend/internal/chat/domain"
	"devconnect_backend/internal/realtime/domain"
	"devconnect_backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Log = logger.Initialize("realtime_test", os.TempDir())
}

// fakeSock records every frame written to it
type fakeSock struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (s *fakeSock) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.frames = append(s.frames, buf)
	return nil
}

func (s *fakeSock) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSock) events() []domain.ServerEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []domain.ServerEvent
	for _, frame := range s.frames {
		var ev domain.ServerEvent
		if err := json.Unmarshal(frame, &ev); err == nil && ev.Event != "" {
			events = append(events, ev)
		}
	}
	return events
}

// fakeBus in-memory bus. Publish delivers synchronously to every
// handler subscribed to the channel, across any number of backplanes
// sharing the instance.
type fakeBus struct {
	mu       sync.Mutex
	handlers map[string][]func(payload []byte)
}

func newFakeBus() *fakeBus {
	return &fakeBus{handlers: make(map[string][]func(payload []byte))}
}

func (b *fakeBus) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	b.mu.Lock()
	handlers := append([]func([]byte){}, b.handlers[channel]...)
	b.mu.Unlock()
	for _, handler := range handlers {
		handler(payload)
	}
	return nil
}

func (b *fakeBus) Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[channel] = append(b.handlers[channel], handler)
	return nil
}

// MockChatService mock the chat seam of the gateway
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) SendMessage(ctx context.Context, chatID, senderID, content string) (*chatdomain.Message, error) {
	args := m.Called(ctx, chatID, senderID, content)
	if msg, ok := args.Get(0).(*chatdomain.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockNotificationService mock the notification seam of the gateway
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, notificationID, memberID string) error {
	args := m.Called(ctx, notificationID, memberID)
	return args.Error(0)
}

func (m *MockNotificationService) CountUnread(ctx context.Context, memberID string) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPresenceRepository mock repository.PresenceRepository
type MockPresenceRepository struct {
	mock.Mock
}

func (m *MockPresenceRepository) SetRecord(ctx context.Context, rec *domain.PresenceRecord, ttl time.Duration) error {
	args := m.Called(ctx, rec, ttl)
	return args.Error(0)
}

func (m *MockPresenceRepository) GetRecord(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	args := m.Called(ctx, userID)
	if rec, ok := args.Get(0).(*domain.PresenceRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPresenceRepository) HasRecord(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPresenceRepository) RefreshTTL(ctx context.Context, userID string, ttl time.Duration) error {
	args := m.Called(ctx, userID, ttl)
	return args.Error(0)
}

func (m *MockPresenceRepository) AddOnline(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresenceRepository) RemoveOnline(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresenceRepository) OnlineMembers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if members, ok := args.Get(0).([]string); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}
