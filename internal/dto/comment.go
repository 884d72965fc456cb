package dto

import (
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// CreateCommentRequest is the payload for a new comment or reply.
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required,max=2000"`
	PostID   int64  `json:"postId" binding:"required,gt=0"`
	ParentID *int64 `json:"parentId" binding:"omitempty,gt=0"`
}

// UpdateCommentRequest replaces a comment's content.
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CommentResponse is a comment with its replies nested underneath.
type CommentResponse struct {
	CommentID int64             `json:"id"`
	PostID    int64             `json:"postId"`
	AuthorID  int64             `json:"authorId"`
	ParentID  *int64            `json:"parentId,omitempty"`
	Content   string            `json:"content"`
	Depth     int               `json:"depth"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Children  []CommentResponse `json:"children"`
}

func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID: c.CommentID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		Depth:     c.Depth,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Children:  []CommentResponse{},
	}
}

// BuildCommentTree nests a flat, creation-ordered comment list by parent reference.
// Replies whose parent is not in the list are promoted to roots.
func BuildCommentTree(comments []domain.Comment) []CommentResponse {
	byParent := make(map[int64][]domain.Comment)
	present := make(map[int64]bool, len(comments))
	for _, c := range comments {
		present[c.CommentID] = true
	}

	var roots []domain.Comment
	for _, c := range comments {
		if c.ParentID == nil || !present[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}

	var build func(c domain.Comment) CommentResponse
	build = func(c domain.Comment) CommentResponse {
		resp := ToCommentResponse(&c)
		for _, child := range byParent[c.CommentID] {
			resp.Children = append(resp.Children, build(child))
		}
		return resp
	}

	tree := make([]CommentResponse, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, build(r))
	}
	return tree
}
