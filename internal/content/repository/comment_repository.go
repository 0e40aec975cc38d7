package repository

import (
	"context"

	"devconnect_backend/internal/content/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository definition comment store
type CommentRepository interface {
	Insert(ctx context.Context, comment *domain.Comment) error
	FindByPost(ctx context.Context, postID string, page, limit int64) ([]domain.Comment, error)
}

type mongoCommentRepository struct {
	coll *mongo.Collection
}

// NewMongoCommentRepository create mongo backed CommentRepository
func NewMongoCommentRepository(db *mongo.Database) CommentRepository {
	return &mongoCommentRepository{
		coll: db.Collection("comments"),
	}
}

// Insert insert one comment
func (r *mongoCommentRepository) Insert(ctx context.Context, comment *domain.Comment) error {
	_, err := r.coll.InsertOne(ctx, comment)
	return err
}

// FindByPost paginated comments, oldest first
func (r *mongoCommentRepository) FindByPost(ctx context.Context, postID string, page, limit int64) ([]domain.Comment, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.M{"created_at": 1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	var comments []domain.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
