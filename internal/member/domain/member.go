package domain

// Member one registered member
type Member struct {
	MemberID    string `bson:"_id,omitempty" json:"member_id"`
	Username    string `bson:"username" json:"username"`
	Email       string `bson:"email" json:"email"`
	Password    string `bson:"password" json:"-"`
	DisplayName string `bson:"display_name,omitempty" json:"display_name,omitempty"`
	Bio         string `bson:"bio,omitempty" json:"bio,omitempty"`
	CreatedAt   int64  `bson:"created_at" json:"created_at"`
}

// MemberQuery lookup filter, nil fields are ignored
type MemberQuery struct {
	MemberID *string
	Username *string
	Email    *string
}
