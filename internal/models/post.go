package models

// Post is a row of the posts table.
type Post struct {
	PostID   int64  `db:"post_id"`
	BoardID  int64  `db:"board_id"`
	AuthorID int64  `db:"author_id"`
	Title    string `db:"title"`
	Content  string `db:"content"`
	Timestamps
}

// Attachment is a row of the attachments table.
type Attachment struct {
	AttachmentID int64  `db:"attachment_id"`
	PostID       int64  `db:"post_id"`
	URL          string `db:"url"`
	ObjectKey    string `db:"object_key"`
}
