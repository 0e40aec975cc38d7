package domain

import "time"

// PresenceStatus definition presence status
type PresenceStatus string

const (
	// StatusOnline user has a live connection
	StatusOnline PresenceStatus = "online"
	// StatusOffline user has no live connection
	StatusOffline PresenceStatus = "offline"
)

// PresenceRecord tracked liveness state for one user. Only one
// connection id is recorded per user; a second connection overwrites
// the first and any disconnect marks the user offline.
type PresenceRecord struct {
	UserID       string         `json:"user_id"`
	Status       PresenceStatus `json:"status"`
	LastSeen     time.Time      `json:"last_seen"`
	ConnectionID string         `json:"connection_id,omitempty"`
}
