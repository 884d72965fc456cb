package services

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/boardhub/board_backend/internal/dto"
)

// CommentReaderSvc defines read operations for comments
type CommentReaderSvc interface {
	// ListComments returns the post's comments ordered by creation.
	ListComments(ctx context.Context, postID int64) ([]domain.Comment, error)
}

// CommentWriterSvc defines write operations for comments
type CommentWriterSvc interface {
	// CreateComment validates the parent and depth and stores the comment atomically.
	CreateComment(ctx context.Context, req dto.CreateCommentRequest, authorID int64) (*domain.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, req dto.UpdateCommentRequest, actorID int64) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID int64, actorID int64) error
}

// CommentSvcFacade combines all comment-related service interfaces
type CommentSvcFacade interface {
	CommentReaderSvc
	CommentWriterSvc
}
