package repository

import (
	"context"
	"time"

	"devconnect_backend/internal/content/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository definition post store
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, postID string) (*domain.Post, error)
	// Find paginated filtered query plus the unpaginated total
	Find(ctx context.Context, query domain.PostQuery) ([]domain.Post, int64, error)
	Update(ctx context.Context, postID string, title, content string, tags []string) error
	Delete(ctx context.Context, postID string) error
	// AddLike $addToSet keeps repeated likes idempotent
	AddLike(ctx context.Context, postID, memberID string) error
	RemoveLike(ctx context.Context, postID, memberID string) error
	AddBookmark(ctx context.Context, postID, memberID string) error
	RemoveBookmark(ctx context.Context, postID, memberID string) error
	IncrementViews(ctx context.Context, postID string) error
	IncrementCommentCount(ctx context.Context, postID string, delta int) error
}

type mongoPostRepository struct {
	coll *mongo.Collection
}

// NewMongoPostRepository create mongo backed PostRepository
func NewMongoPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepository{
		coll: db.Collection("posts"),
	}
}

// Create create post
func (r *mongoPostRepository) Create(ctx context.Context, post *domain.Post) error {
	_, err := r.coll.InsertOne(ctx, post)
	return err
}

// FindByID find post by id, nil when missing
func (r *mongoPostRepository) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	var post domain.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Find filtered page of posts, newest first
func (r *mongoPostRepository) Find(ctx context.Context, query domain.PostQuery) ([]domain.Post, int64, error) {
	filter := bson.M{}
	if query.AuthorID != "" {
		filter["author_id"] = query.AuthorID
	}
	if query.Tag != "" {
		filter["tags"] = query.Tag
	}
	if query.Keyword != "" {
		pattern := bson.M{"$regex": query.Keyword, "$options": "i"}
		filter["$or"] = []bson.M{
			{"title": pattern},
			{"content": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip((page - 1) * query.Limit).
		SetLimit(query.Limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var posts []domain.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update rewrite the editable fields
func (r *mongoPostRepository) Update(ctx context.Context, postID string, title, content string, tags []string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{
			"title":      title,
			"content":    content,
			"tags":       tags,
			"updated_at": time.Now().Unix(),
		}},
	)
	return err
}

// Delete delete post
func (r *mongoPostRepository) Delete(ctx context.Context, postID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}

// AddLike add memberID to the like set
func (r *mongoPostRepository) AddLike(ctx context.Context, postID, memberID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": memberID}},
	)
	return err
}

// RemoveLike remove memberID from the like set
func (r *mongoPostRepository) RemoveLike(ctx context.Context, postID, memberID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": memberID}},
	)
	return err
}

// AddBookmark add memberID to the bookmark set
func (r *mongoPostRepository) AddBookmark(ctx context.Context, postID, memberID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"bookmarks": memberID}},
	)
	return err
}

// RemoveBookmark remove memberID from the bookmark set
func (r *mongoPostRepository) RemoveBookmark(ctx context.Context, postID, memberID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"bookmarks": memberID}},
	)
	return err
}

// IncrementViews bump the view counter
func (r *mongoPostRepository) IncrementViews(ctx context.Context, postID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"view_count": 1}},
	)
	return err
}

// IncrementCommentCount adjust the denormalized comment counter
func (r *mongoPostRepository) IncrementCommentCount(ctx context.Context, postID string, delta int) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"comment_count": delta}},
	)
	return err
}
