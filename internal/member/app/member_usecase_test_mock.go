package app

import (
	"context"
	"os"

	"devconnect_backend/internal/member/domain"
	"devconnect_backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Log = logger.Initialize("member_test", os.TempDir())
}

// MockMemberRepository mock repository.MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindByQuery(ctx context.Context, query *domain.MemberQuery) (*domain.Member, error) {
	args := m.Called(ctx, query)
	if member, ok := args.Get(0).(*domain.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) FindByUsernames(ctx context.Context, usernames []string) ([]domain.Member, error) {
	args := m.Called(ctx, usernames)
	if members, ok := args.Get(0).([]domain.Member); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}
