package app

import (
	"context"
	"strings"
	"time"

	"devconnect_backend/internal/content/domain"
	notifdomain "devconnect_backend/internal/notification/domain"
	errprocess "devconnect_backend/pkg/err"

	"github.com/google/uuid"
)

// CreateIssue create an issue, notifying the assignee when one is set
// at creation time
func (uc *ContentUseCase) CreateIssue(ctx context.Context, creatorID, title, description, assigneeID string) (*domain.Issue, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errprocess.Validation("title is required")
	}

	issue := &domain.Issue{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		CreatorID:   creatorID,
		AssigneeID:  assigneeID,
		Status:      domain.IssueOpen,
		CreatedAt:   time.Now().Unix(),
	}
	if err := uc.issueRepo.Insert(ctx, issue); err != nil {
		return nil, errprocess.Persistence("issue insert failed", err)
	}

	if assigneeID != "" {
		uc.notify(assigneeID, creatorID, notifdomain.TypeAssignment, "assigned you an issue", "issue", issue.ID)
	}
	uc.notifyMentions(description, creatorID, "issue", issue.ID)
	return issue, nil
}

// GetIssue find issue by id
func (uc *ContentUseCase) GetIssue(ctx context.Context, issueID string) (*domain.Issue, error) {
	issue, err := uc.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		return nil, errprocess.Persistence("issue lookup failed", err)
	}
	if issue == nil {
		return nil, errprocess.NotFound("issue not found")
	}
	return issue, nil
}

// ListIssues paginated issues, optionally narrowed to one status
func (uc *ContentUseCase) ListIssues(ctx context.Context, status domain.IssueStatus, page, limit int64) ([]domain.Issue, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultPostPageSize
	}
	issues, err := uc.issueRepo.FindByStatus(ctx, status, page, limit)
	if err != nil {
		return nil, errprocess.Persistence("issue list failed", err)
	}
	return issues, nil
}

// AssignIssue hand the issue to a member and notify them
func (uc *ContentUseCase) AssignIssue(ctx context.Context, issueID, actorID, assigneeID string) error {
	if assigneeID == "" {
		return errprocess.Validation("assignee is required")
	}

	issue, err := uc.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		return errprocess.Persistence("issue lookup failed", err)
	}
	if issue == nil {
		return errprocess.NotFound("issue not found")
	}
	if issue.Status == domain.IssueClosed {
		return errprocess.Validation("issue is closed")
	}

	if err := uc.issueRepo.Assign(ctx, issueID, assigneeID); err != nil {
		return errprocess.Persistence("issue assign failed", err)
	}

	uc.notify(assigneeID, actorID, notifdomain.TypeAssignment, "assigned you an issue", "issue", issueID)
	return nil
}

// CloseIssue close the issue, creator or assignee only
func (uc *ContentUseCase) CloseIssue(ctx context.Context, issueID, memberID string) error {
	issue, err := uc.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		return errprocess.Persistence("issue lookup failed", err)
	}
	if issue == nil {
		return errprocess.NotFound("issue not found")
	}
	if issue.CreatorID != memberID && issue.AssigneeID != memberID {
		return errprocess.Authorization("only the creator or assignee may close the issue")
	}
	if issue.Status == domain.IssueClosed {
		return nil
	}

	if err := uc.issueRepo.Close(ctx, issueID); err != nil {
		return errprocess.Persistence("issue close failed", err)
	}
	return nil
}
