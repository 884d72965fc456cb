package models

import "database/sql"

// Comment is a row of the comments table.
type Comment struct {
	CommentID int64         `db:"comment_id"`
	PostID    int64         `db:"post_id"`
	AuthorID  int64         `db:"author_id"`
	ParentID  sql.NullInt64 `db:"parent_id"`
	Content   string        `db:"content"`
	Depth     int           `db:"depth"`
	Timestamps
}
