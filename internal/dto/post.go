package dto

import (
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// CreatePostRequest is bound from a multipart form; files arrive under "attachments".
type CreatePostRequest struct {
	Title   string `form:"title" json:"title" binding:"required,max=200"`
	Content string `form:"content" json:"content" binding:"required"`
	BoardID int64  `form:"boardId" json:"boardId" binding:"required,gt=0"`
}

// UpdatePostRequest defines the fields of a post that can be changed.
type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content" binding:"omitempty,min=1"`
}

// ListPostsParams defines query parameters for listing posts.
type ListPostsParams struct {
	BoardID *int64 `form:"boardId" binding:"omitempty,gt=0"`
}

// AttachmentResponse is a stored file as exposed to clients.
type AttachmentResponse struct {
	AttachmentID int64  `json:"id"`
	PostID       int64  `json:"postId"`
	URL          string `json:"url"`
}

// PostResponse is a post as exposed to clients.
type PostResponse struct {
	PostID      int64                `json:"id"`
	BoardID     int64                `json:"boardId"`
	AuthorID    int64                `json:"authorId"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func ToPostResponse(post *domain.Post) PostResponse {
	attachments := make([]AttachmentResponse, 0, len(post.Attachments))
	for _, a := range post.Attachments {
		attachments = append(attachments, AttachmentResponse{AttachmentID: a.AttachmentID, PostID: a.PostID, URL: a.URL})
	}
	return PostResponse{
		PostID:      post.PostID,
		BoardID:     post.BoardID,
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Content:     post.Content,
		Attachments: attachments,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// ToPostResponses converts a list; a nil input yields an empty slice.
func ToPostResponses(posts []domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, ToPostResponse(&posts[i]))
	}
	return out
}

// ListPostsResponse wraps the list of posts.
type ListPostsResponse struct {
	Posts []PostResponse `json:"posts"`
}
