package repositories

import (
	"context"
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// SearchCache is the key-value store backing post search: a post index,
// cached search results and per-query hit counters.
type SearchCache interface {
	// IndexPost stores a snapshot of the post for scanning.
	IndexPost(ctx context.Context, post domain.Post) error
	RemovePost(ctx context.Context, postID int64) error
	// ScanPosts returns every indexed post.
	ScanPosts(ctx context.Context) ([]domain.Post, error)

	// GetSearch returns a cached result; found is false on a miss.
	GetSearch(ctx context.Context, key string) (posts []domain.Post, found bool, err error)
	SetSearch(ctx context.Context, key string, posts []domain.Post, ttl time.Duration) error

	IncrementSearchCount(ctx context.Context, key string) error
	TopSearches(ctx context.Context, limit int64) ([]domain.SearchCount, error)
}
