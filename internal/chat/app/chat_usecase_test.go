package app

import (
	"context"
	"errors"
	"testing"

	"devconnect_backend/internal/chat/domain"
	rtdomain "devconnect_backend/internal/realtime/domain"
	errprocess "devconnect_backend/pkg/err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newChatUseCase() (*ChatUseCase, *MockChatRepository, *MockMessageRepository, *MockBus) {
	chatRepo := new(MockChatRepository)
	msgRepo := new(MockMessageRepository)
	bus := new(MockBus)
	return NewChatUseCase(chatRepo, msgRepo, bus), chatRepo, msgRepo, bus
}

func TestGetOrCreateDirectChat_ReturnsExisting(t *testing.T) {
	uc, chatRepo, _, _ := newChatUseCase()

	existing := &domain.Chat{
		ID:           "chat-1",
		Type:         domain.ChatTypeDirect,
		Participants: []string{"alice", "bob"},
	}
	chatRepo.On("FindDirectChat", mock.Anything, "bob", "alice").Return(existing, nil)

	chat, err := uc.GetOrCreateDirectChat(context.Background(), "bob", "alice")
	assert.NoError(t, err)
	assert.Equal(t, "chat-1", chat.ID)
	chatRepo.AssertNotCalled(t, "CreateChat", mock.Anything, mock.Anything)
}

func TestGetOrCreateDirectChat_CreatesWithSortedPair(t *testing.T) {
	uc, chatRepo, _, _ := newChatUseCase()

	chatRepo.On("FindDirectChat", mock.Anything, "bob", "alice").Return(nil, nil)
	chatRepo.On("CreateChat", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return c.Type == domain.ChatTypeDirect &&
			len(c.Participants) == 2 &&
			c.Participants[0] == "alice" && c.Participants[1] == "bob"
	})).Return(nil)

	chat, err := uc.GetOrCreateDirectChat(context.Background(), "bob", "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	chatRepo.AssertExpectations(t)
}

func TestGetOrCreateDirectChat_RejectsSelf(t *testing.T) {
	uc, _, _, _ := newChatUseCase()

	_, err := uc.GetOrCreateDirectChat(context.Background(), "alice", "alice")
	assert.Error(t, err)
	assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))
}

func TestCreateGroupChat_CreatorAlwaysJoins(t *testing.T) {
	uc, chatRepo, _, _ := newChatUseCase()

	chatRepo.On("CreateChat", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return c.Type == domain.ChatTypeGroup && c.Participants[0] == "alice" && len(c.Participants) == 3
	})).Return(nil)

	chat, err := uc.CreateGroupChat(context.Background(), "team", "alice", []string{"bob", "alice", "carol"})
	assert.NoError(t, err)
	assert.Equal(t, "team", chat.Name)
	chatRepo.AssertExpectations(t)
}

func TestSendMessage_PersistsAndPublishes(t *testing.T) {
	uc, chatRepo, msgRepo, bus := newChatUseCase()

	chat := &domain.Chat{
		ID:           "chat-1",
		Type:         domain.ChatTypeDirect,
		Participants: []string{"alice", "bob"},
	}
	chatRepo.On("FindByID", mock.Anything, "chat-1").Return(chat, nil)
	msgRepo.On("InsertMessage", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.ChatID == "chat-1" && m.SenderID == "alice" && len(m.ReadBy) == 1 && m.ReadBy[0] == "alice"
	})).Return(nil)
	chatRepo.On("UpdateLastMessage", mock.Anything, "chat-1", mock.Anything).Return(nil)
	bus.On("Publish", mock.Anything, rtdomain.ChannelRoom, mock.MatchedBy(func(v interface{}) bool {
		env, ok := v.(rtdomain.Envelope)
		return ok && env.Event == rtdomain.EventNewMessage && env.Room == rtdomain.ChatRoom("chat-1")
	})).Return(nil)

	msg, err := uc.SendMessage(context.Background(), "chat-1", "alice", "hello")
	assert.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	bus.AssertExpectations(t)
}

func TestSendMessage_NonParticipantForbidden(t *testing.T) {
	uc, chatRepo, msgRepo, bus := newChatUseCase()

	chat := &domain.Chat{
		ID:           "chat-1",
		Type:         domain.ChatTypeDirect,
		Participants: []string{"alice", "bob"},
	}
	chatRepo.On("FindByID", mock.Anything, "chat-1").Return(chat, nil)

	_, err := uc.SendMessage(context.Background(), "chat-1", "mallory", "hi")
	assert.Error(t, err)
	assert.Equal(t, errprocess.KindAuthorization, errprocess.KindOf(err))
	msgRepo.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_PublishFailureStillReturnsMessage(t *testing.T) {
	uc, chatRepo, msgRepo, bus := newChatUseCase()

	chat := &domain.Chat{
		ID:           "chat-1",
		Type:         domain.ChatTypeGroup,
		Participants: []string{"alice", "bob"},
	}
	chatRepo.On("FindByID", mock.Anything, "chat-1").Return(chat, nil)
	msgRepo.On("InsertMessage", mock.Anything, mock.Anything).Return(nil)
	chatRepo.On("UpdateLastMessage", mock.Anything, "chat-1", mock.Anything).Return(nil)
	bus.On("Publish", mock.Anything, rtdomain.ChannelRoom, mock.Anything).Return(errors.New("bus down"))

	msg, err := uc.SendMessage(context.Background(), "chat-1", "bob", "still delivered later")
	assert.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestSendMessage_InsertFailureDoesNotPublish(t *testing.T) {
	uc, chatRepo, msgRepo, bus := newChatUseCase()

	chat := &domain.Chat{
		ID:           "chat-1",
		Type:         domain.ChatTypeGroup,
		Participants: []string{"alice"},
	}
	chatRepo.On("FindByID", mock.Anything, "chat-1").Return(chat, nil)
	msgRepo.On("InsertMessage", mock.Anything, mock.Anything).Return(errors.New("write rejected"))

	_, err := uc.SendMessage(context.Background(), "chat-1", "alice", "hello")
	assert.Error(t, err)
	assert.Equal(t, errprocess.KindPersistence, errprocess.KindOf(err))
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkMessageRead_ParticipantsOnly(t *testing.T) {
	uc, chatRepo, msgRepo, _ := newChatUseCase()

	msg := &domain.Message{ID: "msg-1", ChatID: "chat-1", SenderID: "alice"}
	chat := &domain.Chat{ID: "chat-1", Participants: []string{"alice", "bob"}}
	msgRepo.On("FindByID", mock.Anything, "msg-1").Return(msg, nil)
	chatRepo.On("FindByID", mock.Anything, "chat-1").Return(chat, nil)

	err := uc.MarkMessageRead(context.Background(), "msg-1", "mallory")
	assert.Equal(t, errprocess.KindAuthorization, errprocess.KindOf(err))
	msgRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)

	msgRepo.On("MarkRead", mock.Anything, "msg-1", "bob").Return(nil)
	assert.NoError(t, uc.MarkMessageRead(context.Background(), "msg-1", "bob"))
}

func TestChatHistory_ClampsLimit(t *testing.T) {
	uc, chatRepo, msgRepo, _ := newChatUseCase()

	chat := &domain.Chat{ID: "chat-1", Participants: []string{"alice"}}
	chatRepo.On("FindByID", mock.Anything, "chat-1").Return(chat, nil)
	msgRepo.On("FindByChat", mock.Anything, "chat-1", int64(0), int64(50)).
		Return([]domain.Message{{ID: "msg-1"}}, nil)

	messages, err := uc.ChatHistory(context.Background(), "chat-1", "alice", 0, 500)
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	msgRepo.AssertExpectations(t)
}

func TestUnreadCounts_NoChats(t *testing.T) {
	uc, chatRepo, msgRepo, _ := newChatUseCase()

	chatRepo.On("FindByParticipant", mock.Anything, "alice").Return([]domain.Chat{}, nil)

	counts, err := uc.UnreadCounts(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Nil(t, counts)
	msgRepo.AssertNotCalled(t, "CountUnreadByChat", mock.Anything, mock.Anything, mock.Anything)
}
