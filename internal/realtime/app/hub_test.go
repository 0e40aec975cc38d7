package app

import (
	"testing"

	"devconnect_backend/internal/realtime/domain"

	"github.com/stretchr/testify/assert"
)

func TestHub_EmitToRoomOnlyReachesMembers(t *testing.T) {
	hub := NewHub()

	inRoom := &fakeSock{}
	outside := &fakeSock{}
	hub.Register("c1", "alice", inRoom)
	hub.Register("c2", "bob", outside)
	hub.Join("c1", domain.ChatRoom("chat-1"))

	hub.EmitToRoom(domain.ChatRoom("chat-1"), "new_message", map[string]string{"k": "v"}, "")

	assert.Len(t, inRoom.events(), 1)
	assert.Empty(t, outside.events())
}

func TestHub_EmitToRoomSkipsExcludedConnection(t *testing.T) {
	hub := NewHub()

	sender := &fakeSock{}
	other := &fakeSock{}
	hub.Register("c1", "alice", sender)
	hub.Register("c2", "bob", other)
	hub.Join("c1", domain.ChatRoom("chat-1"))
	hub.Join("c2", domain.ChatRoom("chat-1"))

	hub.EmitToRoom(domain.ChatRoom("chat-1"), "user_typing", nil, "c1")

	assert.Empty(t, sender.events())
	assert.Len(t, other.events(), 1)
}

func TestHub_BroadcastReachesEveryConnection(t *testing.T) {
	hub := NewHub()

	a := &fakeSock{}
	b := &fakeSock{}
	hub.Register("c1", "alice", a)
	hub.Register("c2", "bob", b)

	hub.Broadcast("presence:update", map[string]string{"user_id": "carol"}, "")

	assert.Len(t, a.events(), 1)
	assert.Len(t, b.events(), 1)
}

func TestHub_UnregisterDropsRoomMemberships(t *testing.T) {
	hub := NewHub()

	sock := &fakeSock{}
	hub.Register("c1", "alice", sock)
	hub.Join("c1", domain.ChatRoom("chat-1"))
	hub.Join("c1", domain.UserRoom("alice"))

	hub.Unregister("c1")

	assert.Zero(t, hub.ConnCount())
	assert.Empty(t, hub.RoomMembers(domain.ChatRoom("chat-1")))
	assert.Empty(t, hub.RoomMembers(domain.UserRoom("alice")))

	// emitting to the vacated room must not panic or deliver
	hub.EmitToRoom(domain.ChatRoom("chat-1"), "new_message", nil, "")
	assert.Empty(t, sock.events())
}

func TestHub_LeaveOnlyAffectsOneRoom(t *testing.T) {
	hub := NewHub()

	sock := &fakeSock{}
	hub.Register("c1", "alice", sock)
	hub.Join("c1", domain.ChatRoom("chat-1"))
	hub.Join("c1", domain.ChatRoom("chat-2"))

	hub.Leave("c1", domain.ChatRoom("chat-1"))

	assert.Empty(t, hub.RoomMembers(domain.ChatRoom("chat-1")))
	assert.Equal(t, []string{"c1"}, hub.RoomMembers(domain.ChatRoom("chat-2")))
}

func TestHub_JoinUnknownConnectionIgnored(t *testing.T) {
	hub := NewHub()
	hub.Join("ghost", domain.ChatRoom("chat-1"))
	assert.Empty(t, hub.RoomMembers(domain.ChatRoom("chat-1")))
}
