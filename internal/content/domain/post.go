package domain

// Post one published post. Likes and Bookmarks are member id sets,
// kept duplicate-free by the store.
type Post struct {
	ID           string   `bson:"_id,omitempty" json:"id"`
	AuthorID     string   `bson:"author_id" json:"author_id"`
	Title        string   `bson:"title" json:"title"`
	Content      string   `bson:"content" json:"content"`
	Tags         []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Likes        []string `bson:"likes" json:"likes"`
	Bookmarks    []string `bson:"bookmarks" json:"bookmarks"`
	ViewCount    int64    `bson:"view_count" json:"view_count"`
	CommentCount int64    `bson:"comment_count" json:"comment_count"`
	CreatedAt    int64    `bson:"created_at" json:"created_at"`
	UpdatedAt    int64    `bson:"updated_at" json:"updated_at"`
}

// LikedBy check memberID already liked the post
func (p *Post) LikedBy(memberID string) bool {
	for _, id := range p.Likes {
		if id == memberID {
			return true
		}
	}
	return false
}

// Comment one comment on a post
type Comment struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	PostID    string `bson:"post_id" json:"post_id"`
	AuthorID  string `bson:"author_id" json:"author_id"`
	Content   string `bson:"content" json:"content"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
}

// PostQuery filter set for post listing and search
type PostQuery struct {
	AuthorID string
	Tag      string
	Keyword  string
	Page     int64
	Limit    int64
}

// PostPage one page of posts plus the unpaginated total
type PostPage struct {
	Posts []Post `json:"posts"`
	Total int64  `json:"total"`
}
