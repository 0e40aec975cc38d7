package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"devconnect_backend/internal/realtime/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPresence_SetOnlinePublishesUpdate(t *testing.T) {
	repo := new(MockPresenceRepository)
	bus := newFakeBus()
	tracker := NewPresenceTracker(repo, bus, time.Minute)

	var published []domain.Envelope
	err := bus.Subscribe(context.Background(), domain.ChannelBroadcast, func(payload []byte) {
		env, ok := decodeEnvelope(domain.ChannelBroadcast, payload)
		if ok {
			published = append(published, *env)
		}
	})
	assert.NoError(t, err)

	repo.On("SetRecord", mock.Anything, mock.MatchedBy(func(rec *domain.PresenceRecord) bool {
		return rec.UserID == "alice" && rec.Status == domain.StatusOnline && rec.ConnectionID == "c1"
	}), time.Minute).Return(nil)
	repo.On("AddOnline", mock.Anything, "alice").Return(nil)

	tracker.SetOnline(context.Background(), "alice", "c1")

	repo.AssertExpectations(t)
	assert.Len(t, published, 1)
	assert.Equal(t, domain.EventPresenceUpdate, published[0].Event)
}

func TestPresence_SetOnlineStoreFailureIsSwallowed(t *testing.T) {
	repo := new(MockPresenceRepository)
	tracker := NewPresenceTracker(repo, newFakeBus(), time.Minute)

	repo.On("SetRecord", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	// must not panic and must not touch the online set
	tracker.SetOnline(context.Background(), "alice", "c1")
	repo.AssertNotCalled(t, "AddOnline", mock.Anything, mock.Anything)
}

func TestPresence_SetOfflineRemovesFromOnlineSet(t *testing.T) {
	repo := new(MockPresenceRepository)
	tracker := NewPresenceTracker(repo, newFakeBus(), time.Minute)

	repo.On("SetRecord", mock.Anything, mock.MatchedBy(func(rec *domain.PresenceRecord) bool {
		return rec.UserID == "alice" && rec.Status == domain.StatusOffline
	}), time.Minute).Return(nil)
	repo.On("RemoveOnline", mock.Anything, "alice").Return(nil)

	tracker.SetOffline(context.Background(), "alice")
	repo.AssertExpectations(t)
}

func TestPresence_GetPresenceDistinguishesUnknownFromOffline(t *testing.T) {
	repo := new(MockPresenceRepository)
	tracker := NewPresenceTracker(repo, newFakeBus(), time.Minute)

	// store failure: unknown, nil record
	repo.On("GetRecord", mock.Anything, "alice").Return(nil, errors.New("redis down")).Once()
	assert.Nil(t, tracker.GetPresence(context.Background(), "alice"))

	// absent record: synthesized offline
	repo.On("GetRecord", mock.Anything, "alice").Return(nil, nil).Once()
	rec := tracker.GetPresence(context.Background(), "alice")
	assert.NotNil(t, rec)
	assert.Equal(t, domain.StatusOffline, rec.Status)

	// live record passes through
	live := &domain.PresenceRecord{UserID: "alice", Status: domain.StatusOnline, ConnectionID: "c1"}
	repo.On("GetRecord", mock.Anything, "alice").Return(live, nil).Once()
	rec = tracker.GetPresence(context.Background(), "alice")
	assert.Equal(t, domain.StatusOnline, rec.Status)
}

func TestPresence_HeartbeatRefreshesTTL(t *testing.T) {
	repo := new(MockPresenceRepository)
	tracker := NewPresenceTracker(repo, newFakeBus(), time.Minute)

	repo.On("RefreshTTL", mock.Anything, "alice", time.Minute).Return(nil)

	tracker.Heartbeat(context.Background(), "alice")
	repo.AssertExpectations(t)
}

func TestPresence_CleanupDropsExpiredMembers(t *testing.T) {
	repo := new(MockPresenceRepository)
	tracker := NewPresenceTracker(repo, newFakeBus(), time.Minute)

	repo.On("OnlineMembers", mock.Anything).Return([]string{"alice", "bob"}, nil)
	repo.On("HasRecord", mock.Anything, "alice").Return(true, nil)
	repo.On("HasRecord", mock.Anything, "bob").Return(false, nil)
	repo.On("RemoveOnline", mock.Anything, "bob").Return(nil)

	tracker.CleanupStale(context.Background())

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "RemoveOnline", mock.Anything, "alice")
}
