package app

import (
	"context"
	"encoding/json"

	"devconnect_backend/internal/realtime/domain"
	"devconnect_backend/pkg/logger"

	"go.uber.org/zap"
)

// Subscriber is the subscribe side of the backplane bus.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error
}

// Emitter is the local delivery surface the backplane re-emits into.
// *Hub satisfies it.
type Emitter interface {
	EmitToRoom(room, event string, data interface{}, excludeConnID string)
	Broadcast(event string, data interface{}, excludeConnID string)
}

// Backplane subscribes the three relay channels and translates bus
// envelopes into local hub emissions. The publishing instance
// receives its own messages too; exclusion is carried per-envelope
// via ExcludeConnectionID.
type Backplane struct {
	bus     Subscriber
	emitter Emitter
	cancel  context.CancelFunc
}

// NewBackplane create Backplane
func NewBackplane(bus Subscriber, emitter Emitter) *Backplane {
	return &Backplane{bus: bus, emitter: emitter}
}

// Start subscribe broadcast, room and user channels. Kept for
// process lifetime; Close tears the subscriptions down.
func (b *Backplane) Start(ctx context.Context) error {
	ctx, b.cancel = context.WithCancel(ctx)

	if err := b.bus.Subscribe(ctx, domain.ChannelBroadcast, b.onBroadcast); err != nil {
		return err
	}
	if err := b.bus.Subscribe(ctx, domain.ChannelRoom, b.onRoom); err != nil {
		return err
	}
	if err := b.bus.Subscribe(ctx, domain.ChannelUser, b.onUser); err != nil {
		return err
	}
	return nil
}

// Close release the channel subscriptions
func (b *Backplane) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

func (b *Backplane) onBroadcast(payload []byte) {
	env, ok := decodeEnvelope(domain.ChannelBroadcast, payload)
	if !ok {
		return
	}
	b.emitter.Broadcast(env.Event, env.Data, env.ExcludeConnectionID)
}

func (b *Backplane) onRoom(payload []byte) {
	env, ok := decodeEnvelope(domain.ChannelRoom, payload)
	if !ok {
		return
	}
	if env.Room == "" {
		logger.Log.Warn("room envelope without room", zap.String("event", env.Event))
		return
	}
	b.emitter.EmitToRoom(env.Room, env.Event, env.Data, env.ExcludeConnectionID)
}

func (b *Backplane) onUser(payload []byte) {
	env, ok := decodeEnvelope(domain.ChannelUser, payload)
	if !ok {
		return
	}
	if env.UserID == "" {
		logger.Log.Warn("user envelope without user id", zap.String("event", env.Event))
		return
	}
	b.emitter.EmitToRoom(domain.UserRoom(env.UserID), env.Event, env.Data, env.ExcludeConnectionID)
}

// decodeEnvelope deserialization failures are logged and dropped,
// they must not kill the subscriber loop.
func decodeEnvelope(channel string, payload []byte) (*domain.Envelope, bool) {
	var env domain.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		logger.Log.Errorf("bad envelope on "+channel+":", err)
		return nil, false
	}
	return &env, true
}
