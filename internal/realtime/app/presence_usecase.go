package app

import (
	"context"
	"time"

	"devconnect_backend/internal/realtime/domain"
	"devconnect_backend/internal/realtime/repository"
	"devconnect_backend/pkg/logger"

	"go.uber.org/zap"
)

// Bus is the publish side of the backplane.
type Bus interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// PresenceTracker best-effort per-user liveness. Presence is
// advisory, not authoritative: storage errors are logged and
// swallowed, only GetPresence reports "unknown" via a nil record.
type PresenceTracker struct {
	repo repository.PresenceRepository
	bus  Bus
	ttl  time.Duration
}

// NewPresenceTracker create PresenceTracker
func NewPresenceTracker(repo repository.PresenceRepository, bus Bus, ttl time.Duration) *PresenceTracker {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &PresenceTracker{repo: repo, bus: bus, ttl: ttl}
}

// SetOnline mark the user online under connectionID. A second call
// with another connection overwrites the first record.
func (p *PresenceTracker) SetOnline(ctx context.Context, userID, connectionID string) {
	rec := &domain.PresenceRecord{
		UserID:       userID,
		Status:       domain.StatusOnline,
		LastSeen:     time.Now(),
		ConnectionID: connectionID,
	}
	if err := p.repo.SetRecord(ctx, rec, p.ttl); err != nil {
		logger.Log.Errorf("presence set online failed:", err, zap.String("user_id", userID))
		return
	}
	if err := p.repo.AddOnline(ctx, userID); err != nil {
		logger.Log.Errorf("presence online set add failed:", err, zap.String("user_id", userID))
	}
	p.publishUpdate(ctx, rec)
}

// SetOffline mark the user offline. Missed online-set removal is
// tolerated, the cleanup pass catches it.
func (p *PresenceTracker) SetOffline(ctx context.Context, userID string) {
	rec := &domain.PresenceRecord{
		UserID:   userID,
		Status:   domain.StatusOffline,
		LastSeen: time.Now(),
	}
	if err := p.repo.SetRecord(ctx, rec, p.ttl); err != nil {
		logger.Log.Errorf("presence set offline failed:", err, zap.String("user_id", userID))
	}
	if err := p.repo.RemoveOnline(ctx, userID); err != nil {
		logger.Log.Errorf("presence online set remove failed:", err, zap.String("user_id", userID))
	}
	p.publishUpdate(ctx, rec)
}

// GetPresence return the live record, a synthesized offline record
// when absent, or nil when the store failed (unknown, not offline).
func (p *PresenceTracker) GetPresence(ctx context.Context, userID string) *domain.PresenceRecord {
	rec, err := p.repo.GetRecord(ctx, userID)
	if err != nil {
		logger.Log.Errorf("presence get failed:", err, zap.String("user_id", userID))
		return nil
	}
	if rec == nil {
		return &domain.PresenceRecord{UserID: userID, Status: domain.StatusOffline}
	}
	return rec
}

// Heartbeat refresh the liveness TTL without changing status.
// No-op when no record exists.
func (p *PresenceTracker) Heartbeat(ctx context.Context, userID string) {
	if err := p.repo.RefreshTTL(ctx, userID, p.ttl); err != nil {
		logger.Log.Errorf("presence heartbeat failed:", err, zap.String("user_id", userID))
	}
}

// CleanupStale drop online-set members whose record expired. Bounds
// the inconsistency window to one cleanup interval.
func (p *PresenceTracker) CleanupStale(ctx context.Context) {
	members, err := p.repo.OnlineMembers(ctx)
	if err != nil {
		logger.Log.Errorf("presence cleanup list failed:", err)
		return
	}
	for _, userID := range members {
		has, err := p.repo.HasRecord(ctx, userID)
		if err != nil {
			logger.Log.Errorf("presence cleanup check failed:", err, zap.String("user_id", userID))
			continue
		}
		if !has {
			if err := p.repo.RemoveOnline(ctx, userID); err != nil {
				logger.Log.Errorf("presence cleanup remove failed:", err, zap.String("user_id", userID))
			}
		}
	}
}

// StartCleanup run CleanupStale every interval until ctx is done.
func (p *PresenceTracker) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.CleanupStale(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// publishUpdate presence events are fire-and-forget, a publish
// failure never fails the presence transition.
func (p *PresenceTracker) publishUpdate(ctx context.Context, rec *domain.PresenceRecord) {
	env := domain.Envelope{
		Event: domain.EventPresenceUpdate,
		Data:  rec,
	}
	if err := p.bus.Publish(ctx, domain.ChannelBroadcast, env); err != nil {
		logger.Log.Errorf("presence update publish failed:", err, zap.String("user_id", rec.UserID))
	}
}
