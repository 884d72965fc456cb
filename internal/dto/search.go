package dto

import "github.com/boardhub/board_backend/internal/core/domain"

// SearchPostsParams defines the search query. At least one field should be set.
type SearchPostsParams struct {
	Title    string `form:"title"`
	AuthorID *int64 `form:"authorId" binding:"omitempty,gt=0"`
}

// SearchPostsResponse wraps search results.
type SearchPostsResponse struct {
	Posts []PostResponse `json:"posts"`
}

// TopSearchesResponse lists the most requested queries.
type TopSearchesResponse struct {
	Searches []domain.SearchCount `json:"searches"`
}
