package repository

import (
	"context"

	"devconnect_backend/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository definition message store
type MessageRepository interface {
	InsertMessage(ctx context.Context, msg *domain.Message) error
	FindByID(ctx context.Context, messageID string) (*domain.Message, error)
	// FindByChat messages older than beforeTimestamp, newest first
	FindByChat(ctx context.Context, chatID string, beforeTimestamp int64, limit int64) ([]domain.Message, error)
	// MarkRead add userID to the message read_by set, idempotent
	MarkRead(ctx context.Context, messageID, userID string) error
	CountUnreadByChat(ctx context.Context, userID string, chatIDs []string) ([]domain.ChatUnreadInfo, error)
}

type mongoMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create mongo backed MessageRepository
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &mongoMessageRepository{
		coll: db.Collection("messages"),
	}
}

// InsertMessage insert one message
func (r *mongoMessageRepository) InsertMessage(ctx context.Context, msg *domain.Message) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

// FindByID find message by id, nil when missing
func (r *mongoMessageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	var msg domain.Message
	err := r.coll.FindOne(ctx, bson.M{"_id": messageID}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// FindByChat paginated history for one chat
func (r *mongoMessageRepository) FindByChat(ctx context.Context, chatID string, beforeTimestamp int64, limit int64) ([]domain.Message, error) {
	filter := bson.M{"chat_id": chatID}
	if beforeTimestamp > 0 {
		filter["timestamp"] = bson.M{"$lt": beforeTimestamp}
	}

	opts := options.Find().SetSort(bson.M{"timestamp": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var messages []domain.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead $addToSet keeps concurrent and repeated reads safe
func (r *mongoMessageRepository) MarkRead(ctx context.Context, messageID, userID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": messageID},
		bson.M{"$addToSet": bson.M{"read_by": userID}},
	)
	return err
}

// CountUnreadByChat unread counts grouped by chat
func (r *mongoMessageRepository) CountUnreadByChat(ctx context.Context, userID string, chatIDs []string) ([]domain.ChatUnreadInfo, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "chat_id", Value: bson.D{{Key: "$in", Value: chatIDs}}},
			{Key: "read_by", Value: bson.D{{Key: "$ne", Value: userID}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$chat_id"},
			{Key: "unread_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var results []domain.ChatUnreadInfo
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
