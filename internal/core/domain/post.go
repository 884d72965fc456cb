package domain

// MaxAttachmentsPerPost caps the number of files attached to a single post.
const MaxAttachmentsPerPost = 3

// Post is an article published on a board.
type Post struct {
	PostID      int64        `json:"postId"`
	BoardID     int64        `json:"boardId"`
	AuthorID    int64        `json:"authorId"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
	Timestamps
}

// Attachment is a file stored in blob storage and linked to a post.
type Attachment struct {
	AttachmentID int64  `json:"attachmentId"`
	PostID       int64  `json:"postId"`
	URL          string `json:"url"`
	ObjectKey    string `json:"-"`
}

// UploadFile is an attachment received from a client, not yet stored.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}
