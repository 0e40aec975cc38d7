package app

import (
	"encoding/json"
	"sync"

	"devconnect_backend/internal/realtime/domain"
	"devconnect_backend/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Sock is the write surface of one websocket connection.
// *websocket.Conn satisfies it; tests plug in fakes.
type Sock interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Conn one registered connection. Writes are serialized by mu since
// handlers and backplane subscribers emit concurrently.
type Conn struct {
	ID     string
	UserID string

	sock Sock
	mu   sync.Mutex
}

// SendEvent push a server event frame to the connection
func (c *Conn) SendEvent(event string, data interface{}) error {
	return c.write(domain.ServerEvent{Event: event, Data: data})
}

// SendResponse push an acknowledgment for an inbound action
func (c *Conn) SendResponse(resp domain.WSResponse) error {
	return c.write(resp)
}

func (c *Conn) write(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock.WriteMessage(websocket.TextMessage, b)
}

// Hub per-instance room registry. Room membership is local to the
// instance holding the socket; cross-instance delivery goes through
// the backplane which re-emits into each local hub.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Conn
	rooms map[string]map[string]*Conn // room -> connID -> conn
	joins map[string]map[string]bool  // connID -> rooms, for cleanup
}

// NewHub create an empty Hub
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Conn),
		rooms: make(map[string]map[string]*Conn),
		joins: make(map[string]map[string]bool),
	}
}

// Register add a connection to the hub
func (h *Hub) Register(connID, userID string, sock Sock) *Conn {
	conn := &Conn{ID: connID, UserID: userID, sock: sock}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[connID] = conn
	h.joins[connID] = make(map[string]bool)
	return conn
}

// Unregister drop the connection and its room memberships
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range h.joins[connID] {
		h.dropFromRoom(room, connID)
	}
	delete(h.joins, connID)
	delete(h.conns, connID)
}

// Join add the connection to a room
func (h *Hub) Join(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn, ok := h.conns[connID]
	if !ok {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*Conn)
	}
	h.rooms[room][connID] = conn
	h.joins[connID][room] = true
}

// Leave remove the connection from a room
func (h *Hub) Leave(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropFromRoom(room, connID)
	if joined, ok := h.joins[connID]; ok {
		delete(joined, room)
	}
}

func (h *Hub) dropFromRoom(room, connID string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// EmitToRoom send event to every local connection in room, skipping
// excludeConnID when set.
func (h *Hub) EmitToRoom(room, event string, data interface{}, excludeConnID string) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.rooms[room]))
	for id, conn := range h.rooms[room] {
		if excludeConnID != "" && id == excludeConnID {
			continue
		}
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.SendEvent(event, data); err != nil {
			logger.Log.Warn("emit to room failed",
				zap.String("room", room), zap.String("conn", conn.ID), zap.Error(err))
		}
	}
}

// Broadcast send event to every local connection
func (h *Hub) Broadcast(event string, data interface{}, excludeConnID string) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns))
	for id, conn := range h.conns {
		if excludeConnID != "" && id == excludeConnID {
			continue
		}
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.SendEvent(event, data); err != nil {
			logger.Log.Warn("broadcast failed",
				zap.String("conn", conn.ID), zap.Error(err))
		}
	}
}

// ConnCount number of registered connections
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// RoomMembers connection ids currently in room
func (h *Hub) RoomMembers(room string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	members := make([]string, 0, len(h.rooms[room]))
	for id := range h.rooms[room] {
		members = append(members, id)
	}
	return members
}
