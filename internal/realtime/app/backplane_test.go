package app

import (
	"context"
	"testing"

	"devconnect_backend/internal/realtime/domain"

	"github.com/stretchr/testify/assert"
)

// two hubs wired to one bus stand in for two service instances
func twoInstances(t *testing.T) (*Hub, *Hub, *fakeBus) {
	bus := newFakeBus()

	hubA := NewHub()
	hubB := NewHub()

	assert.NoError(t, NewBackplane(bus, hubA).Start(context.Background()))
	assert.NoError(t, NewBackplane(bus, hubB).Start(context.Background()))
	return hubA, hubB, bus
}

func TestBackplane_RoomDeliveryCrossesInstances(t *testing.T) {
	hubA, hubB, bus := twoInstances(t)

	local := &fakeSock{}
	remote := &fakeSock{}
	hubA.Register("c1", "alice", local)
	hubA.Join("c1", domain.ChatRoom("chat-1"))
	hubB.Register("c2", "bob", remote)
	hubB.Join("c2", domain.ChatRoom("chat-1"))

	env := domain.Envelope{
		Event: domain.EventNewMessage,
		Room:  domain.ChatRoom("chat-1"),
		Data:  map[string]interface{}{"content": "hello"},
	}
	assert.NoError(t, bus.Publish(context.Background(), domain.ChannelRoom, env))

	assert.Len(t, local.events(), 1)
	assert.Len(t, remote.events(), 1)
	assert.Equal(t, domain.EventNewMessage, remote.events()[0].Event)
}

func TestBackplane_ExclusionOnlySkipsTheNamedConnection(t *testing.T) {
	hubA, hubB, bus := twoInstances(t)

	sender := &fakeSock{}
	sameUserElsewhere := &fakeSock{}
	hubA.Register("c1", "alice", sender)
	hubA.Join("c1", domain.ChatRoom("chat-1"))
	hubB.Register("c2", "bob", sameUserElsewhere)
	hubB.Join("c2", domain.ChatRoom("chat-1"))

	env := domain.Envelope{
		Event:               domain.EventUserTyping,
		Room:                domain.ChatRoom("chat-1"),
		ExcludeConnectionID: "c1",
	}
	assert.NoError(t, bus.Publish(context.Background(), domain.ChannelRoom, env))

	assert.Empty(t, sender.events())
	assert.Len(t, sameUserElsewhere.events(), 1)
}

func TestBackplane_BroadcastReachesAllInstances(t *testing.T) {
	hubA, hubB, bus := twoInstances(t)

	a := &fakeSock{}
	b := &fakeSock{}
	hubA.Register("c1", "alice", a)
	hubB.Register("c2", "bob", b)

	env := domain.Envelope{Event: domain.EventPresenceUpdate, Data: map[string]interface{}{"user_id": "carol"}}
	assert.NoError(t, bus.Publish(context.Background(), domain.ChannelBroadcast, env))

	assert.Len(t, a.events(), 1)
	assert.Len(t, b.events(), 1)
}

func TestBackplane_UserChannelTargetsPersonalRoom(t *testing.T) {
	hubA, hubB, bus := twoInstances(t)

	target := &fakeSock{}
	bystander := &fakeSock{}
	hubA.Register("c1", "alice", target)
	hubA.Join("c1", domain.UserRoom("alice"))
	hubB.Register("c2", "bob", bystander)
	hubB.Join("c2", domain.UserRoom("bob"))

	env := domain.Envelope{Event: domain.EventNotificationNew, UserID: "alice"}
	assert.NoError(t, bus.Publish(context.Background(), domain.ChannelUser, env))

	assert.Len(t, target.events(), 1)
	assert.Empty(t, bystander.events())
}

func TestBackplane_MalformedPayloadIsDropped(t *testing.T) {
	hubA, _, bus := twoInstances(t)

	sock := &fakeSock{}
	hubA.Register("c1", "alice", sock)
	hubA.Join("c1", domain.ChatRoom("chat-1"))

	bus.mu.Lock()
	handlers := append([]func([]byte){}, bus.handlers[domain.ChannelRoom]...)
	bus.mu.Unlock()
	for _, handler := range handlers {
		handler([]byte("{not json"))
	}

	assert.Empty(t, sock.events())
}

func TestRoomPublisher_WrapsEnvelopes(t *testing.T) {
	hubA, _, bus := twoInstances(t)

	sock := &fakeSock{}
	hubA.Register("c1", "alice", sock)
	hubA.Join("c1", domain.NotificationsRoom("alice"))

	pub := NewRoomPublisher(bus)
	err := pub.EmitToRoom(context.Background(), domain.NotificationsRoom("alice"), domain.EventNotificationNew, map[string]interface{}{"id": "n-1"})
	assert.NoError(t, err)

	events := sock.events()
	assert.Len(t, events, 1)
	assert.Equal(t, domain.EventNotificationNew, events[0].Event)
}
