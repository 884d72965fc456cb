package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
)

// PostCleaner releases what lives outside Postgres for posts that a board or
// user delete removes through the foreign-key cascade: their search index
// entries and their attachment objects.
type PostCleaner struct {
	BaseService
	posts   portsrepo.PostReader
	indexer portssvc.PostIndexer
	storage portsrepo.AttachmentStorage
}

// NewPostCleaner creates a cleaner. indexer and storage may be nil.
func NewPostCleaner(posts portsrepo.PostReader, indexer portssvc.PostIndexer, storage portsrepo.AttachmentStorage) *PostCleaner {
	return &PostCleaner{posts: posts, indexer: indexer, storage: storage}
}

func (c *PostCleaner) postsOnBoard(ctx context.Context, boardID int64) ([]domain.Post, error) {
	posts, err := c.posts.ListPosts(ctx, &boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts of board %d: %w", boardID, err)
	}
	return posts, nil
}

func (c *PostCleaner) postsByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	posts, err := c.posts.ListPostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts of user %d: %w", authorID, err)
	}
	return posts, nil
}

// release drops the posts from the search index and deletes their blobs.
// Failures are logged only; the rows are already gone.
func (c *PostCleaner) release(ctx context.Context, posts []domain.Post) {
	for _, post := range posts {
		if c.indexer != nil {
			c.indexer.RemovePost(ctx, post.PostID)
		}
		if c.storage == nil {
			continue
		}
		for _, a := range post.Attachments {
			if a.ObjectKey == "" {
				continue
			}
			if err := c.storage.Delete(ctx, a.ObjectKey); err != nil {
				c.LogError(ctx, err, "Failed to delete attachment object", slog.String("key", a.ObjectKey), slog.Int64("post_id", post.PostID))
			}
		}
	}
	if len(posts) > 0 {
		c.LogInfo(ctx, "Released cascaded posts", slog.Int("count", len(posts)))
	}
}
