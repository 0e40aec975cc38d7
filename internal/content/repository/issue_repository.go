package repository

import (
	"context"
	"time"

	"devconnect_backend/internal/content/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IssueRepository definition issue store
type IssueRepository interface {
	Insert(ctx context.Context, issue *domain.Issue) error
	FindByID(ctx context.Context, issueID string) (*domain.Issue, error)
	FindByStatus(ctx context.Context, status domain.IssueStatus, page, limit int64) ([]domain.Issue, error)
	Assign(ctx context.Context, issueID, assigneeID string) error
	Close(ctx context.Context, issueID string) error
}

type mongoIssueRepository struct {
	coll *mongo.Collection
}

// NewMongoIssueRepository create mongo backed IssueRepository
func NewMongoIssueRepository(db *mongo.Database) IssueRepository {
	return &mongoIssueRepository{
		coll: db.Collection("issues"),
	}
}

// Insert insert one issue
func (r *mongoIssueRepository) Insert(ctx context.Context, issue *domain.Issue) error {
	_, err := r.coll.InsertOne(ctx, issue)
	return err
}

// FindByID find issue by id, nil when missing
func (r *mongoIssueRepository) FindByID(ctx context.Context, issueID string) (*domain.Issue, error) {
	var issue domain.Issue
	err := r.coll.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// FindByStatus paginated issues with one status, newest first
func (r *mongoIssueRepository) FindByStatus(ctx context.Context, status domain.IssueStatus, page, limit int64) ([]domain.Issue, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var issues []domain.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Assign set the issue assignee
func (r *mongoIssueRepository) Assign(ctx context.Context, issueID, assigneeID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$set": bson.M{"assignee_id": assigneeID}},
	)
	return err
}

// Close mark the issue closed with a timestamp
func (r *mongoIssueRepository) Close(ctx context.Context, issueID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": issueID},
		bson.M{"$set": bson.M{"status": domain.IssueClosed, "closed_at": time.Now().Unix()}},
	)
	return err
}
