package repository

import (
	"context"

	"devconnect_backend/internal/member/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemberRepository definition member store
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	// FindByQuery nil when no member matches
	FindByQuery(ctx context.Context, query *domain.MemberQuery) (*domain.Member, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]domain.Member, error)
}

type mongoMemberRepository struct {
	coll *mongo.Collection
}

// NewMongoMemberRepository create mongo backed MemberRepository
func NewMongoMemberRepository(db *mongo.Database) MemberRepository {
	return &mongoMemberRepository{
		coll: db.Collection("members"),
	}
}

// Create create member
func (r *mongoMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	_, err := r.coll.InsertOne(ctx, member)
	return err
}

// FindByQuery find one member by the populated query fields
func (r *mongoMemberRepository) FindByQuery(ctx context.Context, query *domain.MemberQuery) (*domain.Member, error) {
	filter := bson.M{}
	if query.MemberID != nil {
		filter["_id"] = *query.MemberID
	}
	if query.Username != nil {
		filter["username"] = *query.Username
	}
	if query.Email != nil {
		filter["email"] = *query.Email
	}

	var member domain.Member
	err := r.coll.FindOne(ctx, filter).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByUsernames members whose username is in the list
func (r *mongoMemberRepository) FindByUsernames(ctx context.Context, usernames []string) ([]domain.Member, error) {
	cur, err := r.coll.Find(ctx, bson.M{"username": bson.M{"$in": usernames}})
	if err != nil {
		return nil, err
	}
	var members []domain.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}
