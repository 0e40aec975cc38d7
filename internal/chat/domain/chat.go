package domain

// ChatType definition chat type
type ChatType string

const (
	//ChatTypeDirect chat between exactly 2 participants
	ChatTypeDirect ChatType = "direct"
	//ChatTypeGroup group chat
	ChatTypeGroup ChatType = "group"
)

// Chat definition chat. A direct chat is uniquely identified by its
// unordered participant pair; participants are stored sorted so the
// pair is canonical.
type Chat struct {
	ID            string   `bson:"_id,omitempty" json:"id"`
	Type          ChatType `bson:"type" json:"type"`
	Name          string   `bson:"name,omitempty" json:"name,omitempty"`
	Participants  []string `bson:"participants" json:"participants"`
	LastMessageID string   `bson:"last_message_id,omitempty" json:"last_message_id,omitempty"`
	CreatedAt     int64    `bson:"created_at" json:"created_at"`
}

// HasParticipant check userID belongs to the chat
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
