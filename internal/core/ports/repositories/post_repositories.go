package repositories

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// PostReader defines read operations for posts
type PostReader interface {
	// FindPostByID returns the post together with its attachments.
	FindPostByID(ctx context.Context, postID int64) (*domain.Post, error)

	// ListPosts returns all posts, filtered by board when boardID is non-nil.
	ListPosts(ctx context.Context, boardID *int64) ([]domain.Post, error)

	// ListPostsByAuthor returns every post written by authorID, with attachments.
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error)
}

// PostWriter defines write operations for posts
type PostWriter interface {
	// SavePost inserts the post and its attachments in a single transaction.
	SavePost(ctx context.Context, post *domain.Post) error

	// UpdatePost updates title and content.
	UpdatePost(ctx context.Context, post domain.Post) error

	// DeletePost removes the post; attachments and comments cascade.
	DeletePost(ctx context.Context, postID int64) error
}

// PostRepositoryFacade combines all post-related repository interfaces
type PostRepositoryFacade interface {
	PostReader
	PostWriter
}
