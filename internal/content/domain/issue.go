package domain

// IssueStatus definition issue status
type IssueStatus string

const (
	//IssueOpen issue is being worked
	IssueOpen IssueStatus = "open"
	//IssueClosed issue is resolved
	IssueClosed IssueStatus = "closed"
)

// Issue one tracked issue
type Issue struct {
	ID          string      `bson:"_id,omitempty" json:"id"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	CreatorID   string      `bson:"creator_id" json:"creator_id"`
	AssigneeID  string      `bson:"assignee_id,omitempty" json:"assignee_id,omitempty"`
	Status      IssueStatus `bson:"status" json:"status"`
	CreatedAt   int64       `bson:"created_at" json:"created_at"`
	ClosedAt    int64       `bson:"closed_at,omitempty" json:"closed_at,omitempty"`
}
