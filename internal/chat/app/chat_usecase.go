package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"devconnect_backend/internal/chat/domain"
	"devconnect_backend/internal/chat/repository"
	rtdomain "devconnect_backend/internal/realtime/domain"
	"devconnect_backend/pkg"
	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Bus is the publish side of the realtime backplane.
type Bus interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// ChatUseCase chats and messages
type ChatUseCase struct {
	chatRepo repository.ChatRepository
	msgRepo  repository.MessageRepository
	bus      Bus
}

// NewChatUseCase create ChatUseCase
func NewChatUseCase(chatRepo repository.ChatRepository, msgRepo repository.MessageRepository, bus Bus) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		msgRepo:  msgRepo,
		bus:      bus,
	}
}

// GetOrCreateDirectChat return the direct chat for the unordered
// (userA, userB) pair, creating it only when no chat exists yet.
func (uc *ChatUseCase) GetOrCreateDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error) {
	if userA == "" || userB == "" {
		return nil, errprocess.Validation("both participants are required")
	}
	if userA == userB {
		return nil, errprocess.Validation("direct chat needs two distinct participants")
	}

	existing, err := uc.chatRepo.FindDirectChat(ctx, userA, userB)
	if err != nil {
		return nil, errprocess.Persistence("direct chat lookup failed", err)
	}
	if existing != nil {
		return existing, nil
	}

	participants := []string{userA, userB}
	sort.Strings(participants)

	chat := &domain.Chat{
		ID:           uuid.New().String(),
		Type:         domain.ChatTypeDirect,
		Participants: participants,
		CreatedAt:    time.Now().Unix(),
	}
	if err := uc.chatRepo.CreateChat(ctx, chat); err != nil {
		return nil, errprocess.Persistence("direct chat create failed", err)
	}
	return chat, nil
}

// CreateGroupChat create a group chat, the creator always joins
func (uc *ChatUseCase) CreateGroupChat(ctx context.Context, name, creatorID string, participants []string) (*domain.Chat, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errprocess.Validation("group name is required")
	}

	members := []string{creatorID}
	for _, p := range participants {
		if p != "" && !pkg.Contains(members, p) {
			members = append(members, p)
		}
	}

	chat := &domain.Chat{
		ID:           uuid.New().String(),
		Type:         domain.ChatTypeGroup,
		Name:         name,
		Participants: members,
		CreatedAt:    time.Now().Unix(),
	}
	if err := uc.chatRepo.CreateChat(ctx, chat); err != nil {
		return nil, errprocess.Persistence("group chat create failed", err)
	}
	return chat, nil
}

// SendMessage persist the message and broadcast it to the chat room
// on every instance. Persistence failures propagate and nothing is
// broadcast; a broadcast failure after persistence is logged only,
// delivery is best-effort while the store stays the source of truth.
func (uc *ChatUseCase) SendMessage(ctx context.Context, chatID, senderID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if chatID == "" || content == "" {
		return nil, errprocess.Validation("chat_id and content are required")
	}

	chat, err := uc.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		return nil, errprocess.Persistence("chat lookup failed", err)
	}
	if chat == nil {
		return nil, errprocess.NotFound("chat not found")
	}
	if !chat.HasParticipant(senderID) {
		return nil, errprocess.Authorization("sender is not a chat participant")
	}

	msg := &domain.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		ReadBy:    []string{senderID},
		Timestamp: time.Now().Unix(),
	}
	if err := uc.msgRepo.InsertMessage(ctx, msg); err != nil {
		return nil, errprocess.Persistence("message insert failed", err)
	}

	if err := uc.chatRepo.UpdateLastMessage(ctx, chatID, msg.ID); err != nil {
		logger.Log.Errorf("last message update failed:", err, zap.String("chat_id", chatID))
	}

	env := rtdomain.Envelope{
		Event: rtdomain.EventNewMessage,
		Room:  rtdomain.ChatRoom(chatID),
		Data:  msg,
	}
	if err := uc.bus.Publish(ctx, rtdomain.ChannelRoom, env); err != nil {
		logger.Log.Errorf("new message publish failed:", err, zap.String("chat_id", chatID))
	}

	return msg, nil
}

// MarkMessageRead add the reader to the message read set. Only chat
// participants may mark messages read.
func (uc *ChatUseCase) MarkMessageRead(ctx context.Context, messageID, userID string) error {
	msg, err := uc.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		return errprocess.Persistence("message lookup failed", err)
	}
	if msg == nil {
		return errprocess.NotFound("message not found")
	}

	chat, err := uc.chatRepo.FindByID(ctx, msg.ChatID)
	if err != nil {
		return errprocess.Persistence("chat lookup failed", err)
	}
	if chat == nil || !chat.HasParticipant(userID) {
		return errprocess.Authorization("reader is not a chat participant")
	}

	if err := uc.msgRepo.MarkRead(ctx, messageID, userID); err != nil {
		return errprocess.Persistence("mark read failed", err)
	}
	return nil
}

// ChatHistory paginated message history, participants only
func (uc *ChatUseCase) ChatHistory(ctx context.Context, chatID, userID string, beforeTimestamp, limit int64) ([]domain.Message, error) {
	chat, err := uc.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		return nil, errprocess.Persistence("chat lookup failed", err)
	}
	if chat == nil {
		return nil, errprocess.NotFound("chat not found")
	}
	if !chat.HasParticipant(userID) {
		return nil, errprocess.Authorization("reader is not a chat participant")
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	messages, err := uc.msgRepo.FindByChat(ctx, chatID, beforeTimestamp, limit)
	if err != nil {
		return nil, errprocess.Persistence("history lookup failed", err)
	}
	return messages, nil
}

// ListChats chats the user participates in
func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) ([]domain.Chat, error) {
	chats, err := uc.chatRepo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, errprocess.Persistence("chat list failed", err)
	}
	return chats, nil
}

// UnreadCounts unread message counts per chat for the user
func (uc *ChatUseCase) UnreadCounts(ctx context.Context, userID string) ([]domain.ChatUnreadInfo, error) {
	chats, err := uc.chatRepo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, errprocess.Persistence("chat list failed", err)
	}
	if len(chats) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(chats))
	for _, c := range chats {
		ids = append(ids, c.ID)
	}
	counts, err := uc.msgRepo.CountUnreadByChat(ctx, userID, ids)
	if err != nil {
		return nil, errprocess.Persistence("unread count failed", err)
	}
	return counts, nil
}
