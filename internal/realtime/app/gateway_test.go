package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	chatdomain "devconnect_backend/internal/chat/domain"
	"devconnect_backend/internal/realtime/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type gatewayFixture struct {
	gateway  *Gateway
	hub      *Hub
	bus      *fakeBus
	chatSvc  *MockChatService
	notifSvc *MockNotificationService
	presence *MockPresenceRepository
	sock     *fakeSock
	conn     *Conn
}

func newGatewayFixture() *gatewayFixture {
	f := &gatewayFixture{
		hub:      NewHub(),
		bus:      newFakeBus(),
		chatSvc:  new(MockChatService),
		notifSvc: new(MockNotificationService),
		presence: new(MockPresenceRepository),
	}
	tracker := NewPresenceTracker(f.presence, f.bus, time.Minute)
	f.gateway = NewGateway(f.hub, tracker, f.bus, f.chatSvc, f.notifSvc)

	f.sock = &fakeSock{}
	f.conn = f.hub.Register("c1", "alice", f.sock)
	return f
}

func (f *gatewayFixture) dispatch(t *testing.T, req domain.WSRequest) domain.WSResponse {
	payload, err := json.Marshal(req)
	assert.NoError(t, err)
	f.gateway.textMessageAction(context.Background(), f.conn, "alice", payload)

	f.sock.mu.Lock()
	defer f.sock.mu.Unlock()
	assert.NotEmpty(t, f.sock.frames)
	var resp domain.WSResponse
	assert.NoError(t, json.Unmarshal(f.sock.frames[len(f.sock.frames)-1], &resp))
	return resp
}

func TestGateway_SendMessageAck(t *testing.T) {
	f := newGatewayFixture()

	msg := &chatdomain.Message{ID: "msg-1", ChatID: "chat-1", SenderID: "alice", Content: "hi"}
	f.chatSvc.On("SendMessage", mock.Anything, "chat-1", "alice", "hi").Return(msg, nil)

	resp := f.dispatch(t, domain.WSRequest{Action: string(domain.SendMessage), ChatID: "chat-1", Content: "hi"})
	assert.True(t, resp.Success)
	f.chatSvc.AssertExpectations(t)
}

func TestGateway_SendMessageRequiresContent(t *testing.T) {
	f := newGatewayFixture()

	resp := f.dispatch(t, domain.WSRequest{Action: string(domain.SendMessage), ChatID: "chat-1", Content: "  "})
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	f.chatSvc.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGateway_JoinAndLeaveChat(t *testing.T) {
	f := newGatewayFixture()

	resp := f.dispatch(t, domain.WSRequest{Action: string(domain.JoinChat), ChatID: "chat-1"})
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"c1"}, f.hub.RoomMembers(domain.ChatRoom("chat-1")))

	resp = f.dispatch(t, domain.WSRequest{Action: string(domain.LeaveChat), ChatID: "chat-1"})
	assert.True(t, resp.Success)
	assert.Empty(t, f.hub.RoomMembers(domain.ChatRoom("chat-1")))
}

func TestGateway_TypingExcludesSender(t *testing.T) {
	f := newGatewayFixture()

	var published []domain.Envelope
	err := f.bus.Subscribe(context.Background(), domain.ChannelRoom, func(payload []byte) {
		var env domain.Envelope
		if json.Unmarshal(payload, &env) == nil {
			published = append(published, env)
		}
	})
	assert.NoError(t, err)

	resp := f.dispatch(t, domain.WSRequest{Action: string(domain.Typing), ChatID: "chat-1"})
	assert.True(t, resp.Success)

	assert.Len(t, published, 1)
	assert.Equal(t, domain.EventUserTyping, published[0].Event)
	assert.Equal(t, domain.ChatRoom("chat-1"), published[0].Room)
	assert.Equal(t, "c1", published[0].ExcludeConnectionID)
}

func TestGateway_NotificationAckFailureEmitsError(t *testing.T) {
	f := newGatewayFixture()

	f.notifSvc.On("MarkAsRead", mock.Anything, "n-1", "alice").Return(errors.New("notification not found"))

	resp := f.dispatch(t, domain.WSRequest{Action: string(domain.NotificationAck), NotificationID: "n-1"})
	assert.False(t, resp.Success)

	var sawError bool
	for _, ev := range f.sock.events() {
		if ev.Event == domain.EventNotificationError {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func TestGateway_RequestCountEmitsCount(t *testing.T) {
	f := newGatewayFixture()

	f.notifSvc.On("CountUnread", mock.Anything, "alice").Return(int64(4), nil)

	resp := f.dispatch(t, domain.WSRequest{Action: string(domain.NotificationRequestCount)})
	assert.True(t, resp.Success)

	var sawCount bool
	for _, ev := range f.sock.events() {
		if ev.Event == domain.EventNotificationCount {
			sawCount = true
		}
	}
	assert.True(t, sawCount)
}

func TestGateway_UnknownActionRejected(t *testing.T) {
	f := newGatewayFixture()

	resp := f.dispatch(t, domain.WSRequest{Action: "frobnicate"})
	assert.False(t, resp.Success)
	assert.Equal(t, "unknown action", resp.Error)
}

func TestGateway_MalformedPayloadIgnored(t *testing.T) {
	f := newGatewayFixture()

	f.gateway.textMessageAction(context.Background(), f.conn, "alice", []byte("{not json"))

	f.sock.mu.Lock()
	defer f.sock.mu.Unlock()
	assert.Empty(t, f.sock.frames)
}

func TestGateway_UnauthenticatedActionGetsErrorAck(t *testing.T) {
	f := newGatewayFixture()

	payload, err := json.Marshal(domain.WSRequest{Action: string(domain.Heartbeat)})
	assert.NoError(t, err)
	f.gateway.textMessageAction(context.Background(), f.conn, "", payload)

	f.sock.mu.Lock()
	defer f.sock.mu.Unlock()
	var resp domain.WSResponse
	assert.NoError(t, json.Unmarshal(f.sock.frames[len(f.sock.frames)-1], &resp))
	assert.Equal(t, "unauthenticated", resp.Error)
}
