package app

import (
	"context"
	"time"

	"devconnect_backend/internal/notification/domain"
	"devconnect_backend/internal/notification/repository"
	rtdomain "devconnect_backend/internal/realtime/domain"
	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/tasks"

	"github.com/google/uuid"
)

// Pusher delivers an event to a room on every instance.
type Pusher interface {
	EmitToRoom(ctx context.Context, room, event string, data interface{}) error
}

// NotificationUseCase persist notifications and push them to the
// recipient's personal notification room.
type NotificationUseCase struct {
	repo   repository.NotificationRepository
	pusher Pusher
	runner *tasks.Runner
}

// NewNotificationUseCase create NotificationUseCase
func NewNotificationUseCase(repo repository.NotificationRepository, pusher Pusher, runner *tasks.Runner) *NotificationUseCase {
	return &NotificationUseCase{
		repo:   repo,
		pusher: pusher,
		runner: runner,
	}
}

// Create persist a notification and push it in the background.
// A notification whose actor is its own recipient is suppressed
// entirely, nothing is stored and nothing is pushed.
func (uc *NotificationUseCase) Create(ctx context.Context, recipientID, actorID string, typ domain.NotificationType, message string, resource *domain.Resource) (*domain.Notification, error) {
	if recipientID == "" || actorID == "" {
		return nil, errprocess.Validation("recipient and actor are required")
	}
	if recipientID == actorID {
		return nil, nil
	}

	n := &domain.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        typ,
		Message:     message,
		Resource:    resource,
		CreatedAt:   time.Now().Unix(),
	}
	if err := uc.repo.Insert(ctx, n); err != nil {
		return nil, errprocess.Persistence("notification insert failed", err)
	}

	uc.runner.Submit("notification push", func(taskCtx context.Context) error {
		return uc.pusher.EmitToRoom(taskCtx, rtdomain.NotificationsRoom(n.RecipientID), rtdomain.EventNotificationNew, n)
	})

	return n, nil
}

// MarkAsRead mark one notification read, recipients only
func (uc *NotificationUseCase) MarkAsRead(ctx context.Context, notificationID, memberID string) error {
	n, err := uc.repo.FindByID(ctx, notificationID)
	if err != nil {
		return errprocess.Persistence("notification lookup failed", err)
	}
	if n == nil {
		return errprocess.NotFound("notification not found")
	}
	if n.RecipientID != memberID {
		return errprocess.Authorization("notification belongs to another member")
	}
	if n.IsRead {
		return nil
	}
	if err := uc.repo.MarkRead(ctx, notificationID); err != nil {
		return errprocess.Persistence("mark read failed", err)
	}
	return nil
}

// MarkAllAsRead mark every unread notification of the member read
func (uc *NotificationUseCase) MarkAllAsRead(ctx context.Context, memberID string) error {
	if err := uc.repo.MarkAllRead(ctx, memberID); err != nil {
		return errprocess.Persistence("mark all read failed", err)
	}
	return nil
}

// CountUnread unread badge count
func (uc *NotificationUseCase) CountUnread(ctx context.Context, memberID string) (int64, error) {
	count, err := uc.repo.CountUnread(ctx, memberID)
	if err != nil {
		return 0, errprocess.Persistence("unread count failed", err)
	}
	return count, nil
}

// List paginated notification feed, newest first
func (uc *NotificationUseCase) List(ctx context.Context, memberID string, unreadOnly bool, page, limit int64) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	notifications, err := uc.repo.FindByRecipient(ctx, memberID, unreadOnly, page, limit)
	if err != nil {
		return nil, errprocess.Persistence("notification list failed", err)
	}
	return notifications, nil
}
