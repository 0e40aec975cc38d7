package repository

import (
	"context"

	"devconnect_backend/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChatRepository definition chat store
type ChatRepository interface {
	CreateChat(ctx context.Context, chat *domain.Chat) error
	FindByID(ctx context.Context, chatID string) (*domain.Chat, error)
	// FindDirectChat lookup by unordered participant pair
	FindDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error)
	FindByParticipant(ctx context.Context, userID string) ([]domain.Chat, error)
	UpdateLastMessage(ctx context.Context, chatID, messageID string) error
}

type mongoChatRepository struct {
	coll *mongo.Collection
}

// NewMongoChatRepository create mongo backed ChatRepository
func NewMongoChatRepository(db *mongo.Database) ChatRepository {
	return &mongoChatRepository{
		coll: db.Collection("chats"),
	}
}

// CreateChat create chat
func (r *mongoChatRepository) CreateChat(ctx context.Context, chat *domain.Chat) error {
	_, err := r.coll.InsertOne(ctx, chat)
	return err
}

// FindByID find chat by id, nil when missing
func (r *mongoChatRepository) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.coll.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindDirectChat find the direct chat between two users in either order
func (r *mongoChatRepository) FindDirectChat(ctx context.Context, userA, userB string) (*domain.Chat, error) {
	filter := bson.M{
		"type": domain.ChatTypeDirect,
		"participants": bson.M{
			"$all":  []string{userA, userB},
			"$size": 2,
		},
	}
	var chat domain.Chat
	err := r.coll.FindOne(ctx, filter).Decode(&chat)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindByParticipant list chats the user belongs to
func (r *mongoChatRepository) FindByParticipant(ctx context.Context, userID string) ([]domain.Chat, error) {
	cur, err := r.coll.Find(ctx, bson.M{"participants": userID})
	if err != nil {
		return nil, err
	}
	var chats []domain.Chat
	if err := cur.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// UpdateLastMessage set the chat's most recent message back-reference
func (r *mongoChatRepository) UpdateLastMessage(ctx context.Context, chatID, messageID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{"last_message_id": messageID}},
	)
	return err
}
