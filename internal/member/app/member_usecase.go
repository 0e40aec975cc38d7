package app

import (
	"context"
	"regexp"
	"time"

	"devconnect_backend/internal/member/domain"
	"devconnect_backend/internal/member/repository"
	"devconnect_backend/pkg/encrypt"
	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/token"

	"github.com/google/uuid"
)

const tokenIssuer = "devconnect"

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// MemberUseCase registration, login and profile lookup
type MemberUseCase struct {
	repo repository.MemberRepository
}

// NewMemberUseCase create MemberUseCase
func NewMemberUseCase(repo repository.MemberRepository) *MemberUseCase {
	return &MemberUseCase{repo: repo}
}

// Register create a member. Username and email must both be unused.
func (uc *MemberUseCase) Register(ctx context.Context, username, email, password string) (*domain.Member, error) {
	if !usernamePattern.MatchString(username) {
		return nil, errprocess.Validation("username must be 3-30 word characters")
	}
	if email == "" {
		return nil, errprocess.Validation("email is required")
	}

	if existing, err := uc.repo.FindByQuery(ctx, &domain.MemberQuery{Username: &username}); err != nil {
		return nil, errprocess.Persistence("member lookup failed", err)
	} else if existing != nil {
		return nil, errprocess.Validation("username already taken")
	}
	if existing, err := uc.repo.FindByQuery(ctx, &domain.MemberQuery{Email: &email}); err != nil {
		return nil, errprocess.Persistence("member lookup failed", err)
	} else if existing != nil {
		return nil, errprocess.Validation("email already registered")
	}

	hashed, err := encrypt.HashPassword(password)
	if err != nil {
		return nil, errprocess.Validation("password rejected")
	}

	member := &domain.Member{
		MemberID:  uuid.New().String(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now().Unix(),
	}
	if err := uc.repo.Create(ctx, member); err != nil {
		return nil, errprocess.Persistence("member create failed", err)
	}
	return member, nil
}

// Login verify credentials and mint a JWT. The identifier may be the
// username or the email.
func (uc *MemberUseCase) Login(ctx context.Context, identifier, password string) (string, error) {
	member, err := uc.repo.FindByQuery(ctx, &domain.MemberQuery{Username: &identifier})
	if err != nil {
		return "", errprocess.Persistence("member lookup failed", err)
	}
	if member == nil {
		member, err = uc.repo.FindByQuery(ctx, &domain.MemberQuery{Email: &identifier})
		if err != nil {
			return "", errprocess.Persistence("member lookup failed", err)
		}
	}
	if member == nil {
		return "", errprocess.Authorization("invalid credentials")
	}

	if err := encrypt.ComparePassword(member.Password, password); err != nil {
		return "", errprocess.Authorization("invalid credentials")
	}

	jwt, err := token.GenerateJWT(member.MemberID, string(token.RoleMember), tokenIssuer)
	if err != nil {
		return "", errprocess.Persistence("token generation failed", err)
	}
	return jwt, nil
}

// Profile find member by id
func (uc *MemberUseCase) Profile(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := uc.repo.FindByQuery(ctx, &domain.MemberQuery{MemberID: &memberID})
	if err != nil {
		return nil, errprocess.Persistence("member lookup failed", err)
	}
	if member == nil {
		return nil, errprocess.NotFound("member not found")
	}
	return member, nil
}

// FindIDsByUsernames map usernames to member ids, unknown names are
// left out
func (uc *MemberUseCase) FindIDsByUsernames(ctx context.Context, usernames []string) (map[string]string, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	members, err := uc.repo.FindByUsernames(ctx, usernames)
	if err != nil {
		return nil, errprocess.Persistence("member lookup failed", err)
	}

	ids := make(map[string]string, len(members))
	for _, m := range members {
		ids[m.Username] = m.MemberID
	}
	return ids, nil
}
