package app

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	chatdomain "devconnect_backend/internal/chat/domain"
	"devconnect_backend/internal/realtime/domain"
	"devconnect_backend/pkg/logger"
	"devconnect_backend/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatService is the slice of the chat layer the gateway needs.
type ChatService interface {
	SendMessage(ctx context.Context, chatID, senderID, content string) (*chatdomain.Message, error)
}

// NotificationService is the slice of the notification layer the
// gateway needs for ack and count events.
type NotificationService interface {
	MarkAsRead(ctx context.Context, notificationID, memberID string) error
	CountUnread(ctx context.Context, memberID string) (int64, error)
}

// Gateway websocket entry point: authenticates the connection, joins
// it to its personal rooms, tracks presence and dispatches inbound
// actions.
type Gateway struct {
	hub      *Hub
	presence *PresenceTracker
	bus      Bus
	chatSvc  ChatService
	notifSvc NotificationService
}

// NewGateway create Gateway
func NewGateway(hub *Hub, presence *PresenceTracker, bus Bus, chatSvc ChatService, notifSvc NotificationService) *Gateway {
	return &Gateway{
		hub:      hub,
		presence: presence,
		bus:      bus,
		chatSvc:  chatSvc,
		notifSvc: notifSvc,
	}
}

// HandleConnection entry point for one websocket connection. The JWT
// middleware ran during the handshake; a connection without claims is
// closed before any handler registration.
func (g *Gateway) HandleConnection(ctx context.Context, sock *websocket.Conn) {
	memberID, ok := sock.Locals(middlewares.TokenMemberID).(string)
	if !ok || memberID == "" {
		logger.Log.Warn("websocket connection without credentials rejected")
		sock.Close()
		return
	}

	connID := uuid.New().String()
	conn := g.hub.Register(connID, memberID, sock)
	g.hub.Join(connID, domain.UserRoom(memberID))
	g.hub.Join(connID, domain.NotificationsRoom(memberID))
	g.presence.SetOnline(ctx, memberID, connID)

	logger.Log.Info("websocket connected",
		zap.String("user_id", memberID), zap.String("conn_id", connID))

	ticker := time.NewTicker(30 * time.Second)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		// the offline transition must run on every exit path
		g.presence.SetOffline(ctx, memberID)
		g.hub.Unregister(connID)
		ticker.Stop()
		cancel()
		sock.Close()
		logger.Log.Info("websocket closed", zap.String("user_id", memberID), zap.String("conn_id", connID))
	}()

	sock.SetPingHandler(func(appData string) error {
		return sock.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := sock.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Errorf("ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := sock.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Info("websocket close", zap.String("user_id", memberID))
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		g.textMessageAction(ctx, conn, memberID, message)
	}
}

func (g *Gateway) textMessageAction(ctx context.Context, conn *Conn, memberID string, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Errorf("bad websocket payload:", err, zap.String("user_id", memberID))
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}

	// every handler re-checks the credential, an unauthenticated
	// attempt gets an error ack, never a crash
	if memberID == "" {
		resp.Error = "unauthenticated"
		g.sendResponse(conn, resp)
		return
	}

	switch domain.Action(req.Action) {
	case domain.SendMessage:
		content := strings.TrimSpace(req.Content)
		if content == "" || req.ChatID == "" {
			resp.Error = "chat_id and content are required"
			break
		}
		message, err := g.chatSvc.SendMessage(ctx, req.ChatID, memberID, content)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["message"] = message
		}

	case domain.JoinChat:
		if req.ChatID == "" {
			resp.Error = "chat_id is required"
			break
		}
		g.hub.Join(conn.ID, domain.ChatRoom(req.ChatID))
		resp.Success = true

	case domain.LeaveChat:
		if req.ChatID == "" {
			resp.Error = "chat_id is required"
			break
		}
		g.hub.Leave(conn.ID, domain.ChatRoom(req.ChatID))
		resp.Success = true

	case domain.Typing, domain.StopTyping:
		if req.ChatID == "" {
			resp.Error = "chat_id is required"
			break
		}
		event := domain.EventUserTyping
		if domain.Action(req.Action) == domain.StopTyping {
			event = domain.EventUserStopTyping
		}
		env := domain.Envelope{
			Event:               event,
			Room:                domain.ChatRoom(req.ChatID),
			Data:                map[string]interface{}{"chat_id": req.ChatID, "user_id": memberID},
			ExcludeConnectionID: conn.ID,
		}
		if err := g.bus.Publish(ctx, domain.ChannelRoom, env); err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
		}

	case domain.UserOnline:
		g.presence.SetOnline(ctx, memberID, conn.ID)
		resp.Success = true

	case domain.UserOffline:
		g.presence.SetOffline(ctx, memberID)
		resp.Success = true

	case domain.Heartbeat:
		g.presence.Heartbeat(ctx, memberID)
		resp.Success = true

	case domain.NotificationAck:
		if req.NotificationID == "" {
			resp.Error = "notification_id is required"
			break
		}
		if err := g.notifSvc.MarkAsRead(ctx, req.NotificationID, memberID); err != nil {
			resp.Error = err.Error()
			if sendErr := conn.SendEvent(domain.EventNotificationError, map[string]interface{}{"error": err.Error()}); sendErr != nil {
				logger.Log.Errorf("notification error emit failed:", sendErr)
			}
		} else {
			resp.Success = true
		}

	case domain.NotificationRequestCount:
		count, err := g.notifSvc.CountUnread(ctx, memberID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["count"] = count
			if sendErr := conn.SendEvent(domain.EventNotificationCount, map[string]interface{}{"count": count}); sendErr != nil {
				logger.Log.Errorf("notification count emit failed:", sendErr)
			}
		}

	default:
		resp.Error = "unknown action"
	}

	if resp.Error != "" {
		logger.Log.Warn("websocket action failed",
			zap.String("user_id", memberID), zap.String("action", req.Action), zap.String("err", resp.Error))
	}
	g.sendResponse(conn, resp)
}

func (g *Gateway) sendResponse(conn *Conn, resp domain.WSResponse) {
	if err := conn.SendResponse(resp); err != nil {
		logger.Log.Errorf("write response error:", err)
	}
}
