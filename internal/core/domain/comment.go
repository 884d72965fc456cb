package domain

// Comment is a node in a post's comment forest.
// Depth is 0 for top-level comments and parent depth + 1 for replies.
type Comment struct {
	CommentID int64  `json:"commentId"`
	PostID    int64  `json:"postId"`
	AuthorID  int64  `json:"authorId"`
	ParentID  *int64 `json:"parentId,omitempty"`
	Content   string `json:"content"`
	Depth     int    `json:"depth"`
	Timestamps
}

// IsRoot reports whether the comment has no parent.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}
