package domain

// NotificationType definition notification type
type NotificationType string

const (
	//TypeLike someone liked the recipient's post
	TypeLike NotificationType = "like"
	//TypeComment someone commented on the recipient's post
	TypeComment NotificationType = "comment"
	//TypeMention recipient was @mentioned
	TypeMention NotificationType = "mention"
	//TypeAssignment recipient was assigned an issue
	TypeAssignment NotificationType = "assignment"
	//TypeMessage recipient got a message outside an open chat
	TypeMessage NotificationType = "message"
)

// Resource the entity the notification points back to
type Resource struct {
	Type string `bson:"type" json:"type"`
	ID   string `bson:"id" json:"id"`
}

// Notification one persisted notification for one recipient
type Notification struct {
	ID          string           `bson:"_id,omitempty" json:"id"`
	RecipientID string           `bson:"recipient_id" json:"recipient_id"`
	ActorID     string           `bson:"actor_id" json:"actor_id"`
	Type        NotificationType `bson:"type" json:"type"`
	Message     string           `bson:"message" json:"message"`
	Resource    *Resource        `bson:"resource,omitempty" json:"resource,omitempty"`
	IsRead      bool             `bson:"is_read" json:"is_read"`
	CreatedAt   int64            `bson:"created_at" json:"created_at"`
	ReadAt      int64            `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
