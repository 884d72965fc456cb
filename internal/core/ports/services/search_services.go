package services

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/boardhub/board_backend/internal/dto"
)

// PostIndexer keeps the search index in sync with post writes.
type PostIndexer interface {
	IndexPost(ctx context.Context, post domain.Post)
	RemovePost(ctx context.Context, postID int64)
}

// SearchSvcFacade defines post search operations.
type SearchSvcFacade interface {
	PostIndexer
	SearchPosts(ctx context.Context, params dto.SearchPostsParams) ([]domain.Post, error)
	TopSearches(ctx context.Context) ([]domain.SearchCount, error)
}
