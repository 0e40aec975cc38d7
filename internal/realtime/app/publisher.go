package app

import (
	"context"

	"devconnect_backend/internal/realtime/domain"
)

// RoomPublisher cross-instance emit-to-room capability. It is the
// narrow interface other services (notification fan-out, content
// layer) get injected with, so they never import the gateway.
type RoomPublisher struct {
	bus Bus
}

// NewRoomPublisher create RoomPublisher
func NewRoomPublisher(bus Bus) *RoomPublisher {
	return &RoomPublisher{bus: bus}
}

// EmitToRoom publish event to room on every instance
func (p *RoomPublisher) EmitToRoom(ctx context.Context, room, event string, data interface{}) error {
	return p.bus.Publish(ctx, domain.ChannelRoom, domain.Envelope{
		Event: event,
		Room:  room,
		Data:  data,
	})
}

// EmitToUser publish event to one user's personal room on every instance
func (p *RoomPublisher) EmitToUser(ctx context.Context, userID, event string, data interface{}) error {
	return p.bus.Publish(ctx, domain.ChannelUser, domain.Envelope{
		Event:  event,
		UserID: userID,
		Data:   data,
	})
}
