package app

import (
	"context"
	"os"

	"devconnect_backend/internal/chat/domain"
	"devconnect_backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Log = logger.Initialize("chat_test", os.TempDir())
}

// MockChatRepository mock repository.ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) CreateChat(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	args := m.Called(ctx, chatID)
	if chat, ok := args.Get(0).(*domain.Chat); ok {
		return chat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepository) FindDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error) {
	args := m.Called(ctx, userA, userB)
	if chat, ok := args.Get(0).(*domain.Chat); ok {
		return chat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepository) FindByParticipant(ctx context.Context, userID string) ([]domain.Chat, error) {
	args := m.Called(ctx, userID)
	if chats, ok := args.Get(0).([]domain.Chat); ok {
		return chats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepository) UpdateLastMessage(ctx context.Context, chatID, messageID string) error {
	args := m.Called(ctx, chatID, messageID)
	return args.Error(0)
}

// MockMessageRepository mock repository.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) InsertMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	args := m.Called(ctx, messageID)
	if msg, ok := args.Get(0).(*domain.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) FindByChat(ctx context.Context, chatID string, beforeTimestamp int64, limit int64) ([]domain.Message, error) {
	args := m.Called(ctx, chatID, beforeTimestamp, limit)
	if msgs, ok := args.Get(0).([]domain.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, messageID, userID string) error {
	args := m.Called(ctx, messageID, userID)
	return args.Error(0)
}

func (m *MockMessageRepository) CountUnreadByChat(ctx context.Context, userID string, chatIDs []string) ([]domain.ChatUnreadInfo, error) {
	args := m.Called(ctx, userID, chatIDs)
	if counts, ok := args.Get(0).([]domain.ChatUnreadInfo); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockBus mock the backplane publish side
type MockBus struct {
	mock.Mock
}

func (m *MockBus) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}
