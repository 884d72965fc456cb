package repositories

import (
	"context"
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// CommentReader defines read operations for comments
type CommentReader interface {
	FindCommentByID(ctx context.Context, commentID int64) (*domain.Comment, error)

	// ListCommentsByPost returns every comment of a post ordered by creation time.
	ListCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error)
}

// CommentTxStore is the part of comment persistence used inside a transaction.
type CommentTxStore interface {
	// FindParentForReply reads the parent comment and holds a share lock on it
	// until the transaction ends, so it cannot be deleted mid-reply.
	FindParentForReply(ctx context.Context, commentID int64) (*domain.Comment, error)

	// InsertComment persists the comment and fills in its ID and timestamps.
	// A vanished post or parent surfaces as ErrNotFound or ErrInvalidParent.
	InsertComment(ctx context.Context, comment *domain.Comment) error
}

// CommentWriter defines write operations for comments
type CommentWriter interface {
	// WithinTx runs fn in one transaction, committing only when fn returns nil.
	WithinTx(ctx context.Context, fn func(ctx context.Context, store CommentTxStore) error) error

	UpdateCommentContent(ctx context.Context, commentID int64, content string, updatedAt time.Time) error

	// DeleteComment removes the comment and, through the foreign key, its replies.
	DeleteComment(ctx context.Context, commentID int64) error
}

// CommentRepositoryFacade combines all comment-related repository interfaces
type CommentRepositoryFacade interface {
	CommentReader
	CommentWriter
}
