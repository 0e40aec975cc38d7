package domain

// Message one chat message. The sender is part of ReadBy from
// creation.
type Message struct {
	ID        string   `bson:"_id,omitempty" json:"id"`
	ChatID    string   `bson:"chat_id" json:"chat_id"`
	SenderID  string   `bson:"sender_id" json:"sender_id"`
	Content   string   `bson:"content" json:"content"`
	ReadBy    []string `bson:"read_by" json:"read_by"`
	Timestamp int64    `bson:"timestamp" json:"timestamp"`
}

// ChatUnreadInfo unread count for one chat
type ChatUnreadInfo struct {
	ChatID      string `bson:"_id" json:"chat_id"`
	UnreadCount int    `bson:"unread_count" json:"unread_count"`
}
