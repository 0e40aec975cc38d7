package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"devconnect_backend/internal/notification/domain"
	rtdomain "devconnect_backend/internal/realtime/domain"
	errprocess "devconnect_backend/pkg/err"
	"devconnect_backend/pkg/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newNotificationUseCase() (*NotificationUseCase, *MockNotificationRepository, *MockPusher, *tasks.Runner) {
	repo := new(MockNotificationRepository)
	pusher := new(MockPusher)
	runner := tasks.NewRunner(time.Second)
	return NewNotificationUseCase(repo, pusher, runner), repo, pusher, runner
}

func TestCreate_PersistsAndPushes(t *testing.T) {
	uc, repo, pusher, runner := newNotificationUseCase()

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.RecipientID == "bob" && n.ActorID == "alice" && n.Type == domain.TypeLike && !n.IsRead
	})).Return(nil)
	pusher.On("EmitToRoom", mock.Anything, rtdomain.NotificationsRoom("bob"), rtdomain.EventNotificationNew, mock.Anything).Return(nil)

	n, err := uc.Create(context.Background(), "bob", "alice", domain.TypeLike, "alice liked your post", &domain.Resource{Type: "post", ID: "post-1"})
	assert.NoError(t, err)
	assert.NotNil(t, n)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, runner.Wait(ctx))
	pusher.AssertExpectations(t)
}

func TestCreate_SelfActionSuppressed(t *testing.T) {
	uc, repo, pusher, runner := newNotificationUseCase()

	n, err := uc.Create(context.Background(), "alice", "alice", domain.TypeComment, "alice commented", nil)
	assert.NoError(t, err)
	assert.Nil(t, n)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, runner.Wait(ctx))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	pusher.AssertNotCalled(t, "EmitToRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_InsertFailureDoesNotPush(t *testing.T) {
	uc, repo, pusher, runner := newNotificationUseCase()

	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("write rejected"))

	_, err := uc.Create(context.Background(), "bob", "alice", domain.TypeMention, "alice mentioned you", nil)
	assert.Error(t, err)
	assert.Equal(t, errprocess.KindPersistence, errprocess.KindOf(err))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, runner.Wait(ctx))
	pusher.AssertNotCalled(t, "EmitToRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkAsRead_OwnershipEnforced(t *testing.T) {
	uc, repo, _, _ := newNotificationUseCase()

	n := &domain.Notification{ID: "n-1", RecipientID: "bob"}
	repo.On("FindByID", mock.Anything, "n-1").Return(n, nil)

	err := uc.MarkAsRead(context.Background(), "n-1", "mallory")
	assert.Equal(t, errprocess.KindAuthorization, errprocess.KindOf(err))
	repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)

	repo.On("MarkRead", mock.Anything, "n-1").Return(nil)
	assert.NoError(t, uc.MarkAsRead(context.Background(), "n-1", "bob"))
}

func TestMarkAsRead_AlreadyReadIsNoop(t *testing.T) {
	uc, repo, _, _ := newNotificationUseCase()

	n := &domain.Notification{ID: "n-1", RecipientID: "bob", IsRead: true}
	repo.On("FindByID", mock.Anything, "n-1").Return(n, nil)

	assert.NoError(t, uc.MarkAsRead(context.Background(), "n-1", "bob"))
	repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
}

func TestMarkAsRead_MissingNotification(t *testing.T) {
	uc, repo, _, _ := newNotificationUseCase()

	repo.On("FindByID", mock.Anything, "gone").Return(nil, nil)

	err := uc.MarkAsRead(context.Background(), "gone", "bob")
	assert.Equal(t, errprocess.KindNotFound, errprocess.KindOf(err))
}

func TestList_ClampsLimit(t *testing.T) {
	uc, repo, _, _ := newNotificationUseCase()

	repo.On("FindByRecipient", mock.Anything, "bob", true, int64(1), int64(20)).
		Return([]domain.Notification{{ID: "n-1"}}, nil)

	notifications, err := uc.List(context.Background(), "bob", true, 1, 0)
	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	repo.AssertExpectations(t)
}

func TestCountUnread(t *testing.T) {
	uc, repo, _, _ := newNotificationUseCase()

	repo.On("CountUnread", mock.Anything, "bob").Return(int64(7), nil)

	count, err := uc.CountUnread(context.Background(), "bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
