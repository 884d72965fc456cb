package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
)

// topSearchLimit is the number of queries returned by TopSearches.
const topSearchLimit = 10

type searchService struct {
	BaseService
	cache portsrepo.SearchCache
	ttl   time.Duration
}

// NewSearchService creates a search service. cache may be nil, in which case
// searches fail with ErrUnavailable and index updates are skipped.
func NewSearchService(cache portsrepo.SearchCache, ttl time.Duration) portssvc.SearchSvcFacade {
	return &searchService{cache: cache, ttl: ttl}
}

var _ portssvc.SearchSvcFacade = (*searchService)(nil)

// SearchKey builds the cache key of a query.
func SearchKey(title string, authorID *int64) string {
	author := ""
	if authorID != nil {
		author = strconv.FormatInt(*authorID, 10)
	}
	return "search:" + title + ":" + author
}

// IndexPost stores the post in the search index. Failures are logged only.
func (s *searchService) IndexPost(ctx context.Context, post domain.Post) {
	if s.cache == nil {
		return
	}
	if err := s.cache.IndexPost(ctx, post); err != nil {
		s.LogError(ctx, err, "Failed to index post", slog.Int64("post_id", post.PostID))
	}
}

// RemovePost drops the post from the search index. Failures are logged only.
func (s *searchService) RemovePost(ctx context.Context, postID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.RemovePost(ctx, postID); err != nil {
		s.LogError(ctx, err, "Failed to remove post from index", slog.Int64("post_id", postID))
	}
}

// SearchPosts returns indexed posts whose title contains params.Title or whose
// author is params.AuthorID. Results are cached per query.
func (s *searchService) SearchPosts(ctx context.Context, params dto.SearchPostsParams) ([]domain.Post, error) {
	if s.cache == nil {
		return nil, apperrors.ErrUnavailable
	}
	title := strings.TrimSpace(params.Title)
	if title == "" && params.AuthorID == nil {
		return nil, fmt.Errorf("title or authorId is required: %w", apperrors.ErrValidation)
	}

	key := SearchKey(title, params.AuthorID)

	cached, found, err := s.cache.GetSearch(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to read search cache", slog.String("key", key))
		return nil, fmt.Errorf("failed to read search cache: %w", err)
	}
	if found {
		s.countSearch(ctx, key)
		s.LogDebug(ctx, "Search cache hit", slog.String("key", key))
		return cached, nil
	}

	indexed, err := s.cache.ScanPosts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to scan post index")
		return nil, fmt.Errorf("failed to scan post index: %w", err)
	}

	results := []domain.Post{}
	for _, post := range indexed {
		if matchesSearch(post, title, params.AuthorID) {
			results = append(results, post)
		}
	}

	if err := s.cache.SetSearch(ctx, key, results, s.ttl); err != nil {
		s.LogError(ctx, err, "Failed to cache search results", slog.String("key", key))
	}
	s.countSearch(ctx, key)
	return results, nil
}

func matchesSearch(post domain.Post, title string, authorID *int64) bool {
	if title != "" && strings.Contains(post.Title, title) {
		return true
	}
	return authorID != nil && post.AuthorID == *authorID
}

func (s *searchService) countSearch(ctx context.Context, key string) {
	if err := s.cache.IncrementSearchCount(ctx, key); err != nil {
		s.LogError(ctx, err, "Failed to count search", slog.String("key", key))
	}
}

// TopSearches returns the most requested queries with their counts.
func (s *searchService) TopSearches(ctx context.Context) ([]domain.SearchCount, error) {
	if s.cache == nil {
		return nil, apperrors.ErrUnavailable
	}
	top, err := s.cache.TopSearches(ctx, topSearchLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to read top searches")
		return nil, fmt.Errorf("failed to read top searches: %w", err)
	}
	return top, nil
}
