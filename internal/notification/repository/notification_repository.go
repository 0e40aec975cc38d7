package repository

import (
	"context"
	"time"

	"devconnect_backend/internal/notification/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository definition notification store
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// FindByRecipient newest first, unreadOnly narrows to is_read=false
	FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool, page, limit int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type mongoNotificationRepository struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepository create mongo backed NotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{
		coll: db.Collection("notifications"),
	}
}

// Insert insert one notification
func (r *mongoNotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

// FindByID find notification by id, nil when missing
func (r *mongoNotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	var n domain.Notification
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// FindByRecipient paginated notification feed
func (r *mongoNotificationRepository) FindByRecipient(ctx context.Context, recipientID string, unreadOnly bool, page, limit int64) ([]domain.Notification, error) {
	filter := bson.M{"recipient_id": recipientID}
	if unreadOnly {
		filter["is_read"] = false
	}
	if page < 1 {
		page = 1
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var notifications []domain.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead set is_read and the read timestamp
func (r *mongoNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_read": true, "read_at": time.Now().Unix()}},
	)
	return err
}

// MarkAllRead mark every unread notification of the recipient read
func (r *mongoNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": time.Now().Unix()}},
	)
	return err
}

// CountUnread unread notification count for the badge
func (r *mongoNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "is_read": false})
}
