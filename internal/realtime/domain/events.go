package domain

// Action websocket request action
type Action string

const (
	// SendMessage websocket action send_message
	SendMessage Action = "send_message"
	// JoinChat websocket action join_chat
	JoinChat Action = "join_chat"
	// LeaveChat websocket action leave_chat
	LeaveChat Action = "leave_chat"
	// Typing websocket action typing
	Typing Action = "typing"
	// StopTyping websocket action stop_typing
	StopTyping Action = "stop_typing"
	// UserOnline websocket action user_online
	UserOnline Action = "user_online"
	// UserOffline websocket action user_offline
	UserOffline Action = "user_offline"
	// Heartbeat websocket action presence:heartbeat
	Heartbeat Action = "presence:heartbeat"
	// NotificationAck websocket action notification:ack
	NotificationAck Action = "notification:ack"
	// NotificationRequestCount websocket action notification:request_count
	NotificationRequestCount Action = "notification:request_count"
)

// Outbound server → connection event names.
const (
	// EventNewMessage a chat message was created
	EventNewMessage = "new_message"
	// EventUserTyping someone started typing in a chat
	EventUserTyping = "user_typing"
	// EventUserStopTyping someone stopped typing in a chat
	EventUserStopTyping = "user_stop_typing"
	// EventPresenceUpdate a presence record changed
	EventPresenceUpdate = "presence:update"
	// EventNotificationNew a notification was created for the recipient
	EventNotificationNew = "notification:new"
	// EventNotificationCount unread notification count
	EventNotificationCount = "notification:count"
	// EventNotificationError notification action failed
	EventNotificationError = "notification:error"
)

// Backplane channel names. Every instance subscribes to all three at
// boot and keeps the subscriptions for process lifetime.
const (
	// ChannelBroadcast deliver to all connections on all instances
	ChannelBroadcast = "realtime:broadcast"
	// ChannelRoom deliver to all connections in the named room on all instances
	ChannelRoom = "realtime:room"
	// ChannelUser deliver to all connections in one user's personal room
	ChannelUser = "realtime:user"
)

// Envelope is the JSON message relayed between instances over the bus.
type Envelope struct {
	Event               string      `json:"event"`
	Data                interface{} `json:"data"`
	Room                string      `json:"room,omitempty"`
	UserID              string      `json:"user_id,omitempty"`
	ExcludeConnectionID string      `json:"exclude_connection_id,omitempty"`
}

// UserRoom personal room for user-targeted delivery
func UserRoom(userID string) string { return "user:" + userID }

// NotificationsRoom room for notification push
func NotificationsRoom(userID string) string { return "notifications:" + userID }

// ChatRoom room for chat delivery
func ChatRoom(chatID string) string { return "chat:" + chatID }

// WSRequest websocket Request
type WSRequest struct {
	Action         string `json:"action"`
	ChatID         string `json:"chat_id"`
	Content        string `json:"content"`
	MessageID      string `json:"message_id"`
	NotificationID string `json:"notification_id"`
}

// WSResponse websocket acknowledgment for an inbound action
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// ServerEvent server-pushed event frame
type ServerEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
