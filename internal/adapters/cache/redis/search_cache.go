package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	postKeyPrefix   = "post:"
	searchCountsKey = "searchCounts"
	scanBatchSize   = 100
)

// SearchCache implements portsrepo.SearchCache on Redis.
type SearchCache struct {
	client redis.Cmdable
}

var _ portsrepo.SearchCache = (*SearchCache)(nil)

// NewSearchCache wraps a Redis client.
func NewSearchCache(client redis.Cmdable) *SearchCache {
	return &SearchCache{client: client}
}

func postKey(postID int64) string {
	return postKeyPrefix + strconv.FormatInt(postID, 10)
}

func (c *SearchCache) IndexPost(ctx context.Context, post domain.Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to encode post %d: %w", post.PostID, err)
	}
	if err := c.client.Set(ctx, postKey(post.PostID), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to index post %d: %w", post.PostID, err)
	}
	return nil
}

func (c *SearchCache) RemovePost(ctx context.Context, postID int64) error {
	if err := c.client.Del(ctx, postKey(postID)).Err(); err != nil {
		return fmt.Errorf("failed to remove post %d from index: %w", postID, err)
	}
	return nil
}

// ScanPosts walks the post index with SCAN so large indexes do not block Redis.
func (c *SearchCache) ScanPosts(ctx context.Context) ([]domain.Post, error) {
	posts := []domain.Post{}
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, postKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan post index: %w", err)
		}
		if len(keys) > 0 {
			values, err := c.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, fmt.Errorf("failed to load indexed posts: %w", err)
			}
			for _, v := range values {
				raw, ok := v.(string)
				if !ok {
					// Deleted between SCAN and MGET.
					continue
				}
				var post domain.Post
				if err := json.Unmarshal([]byte(raw), &post); err != nil {
					return nil, fmt.Errorf("failed to decode indexed post: %w", err)
				}
				posts = append(posts, post)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return posts, nil
}

func (c *SearchCache) GetSearch(ctx context.Context, key string) ([]domain.Post, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached search %s: %w", key, err)
	}
	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached search %s: %w", key, err)
	}
	return posts, true, nil
}

func (c *SearchCache) SetSearch(ctx context.Context, key string, posts []domain.Post, ttl time.Duration) error {
	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode search results: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache search %s: %w", key, err)
	}
	return nil
}

func (c *SearchCache) IncrementSearchCount(ctx context.Context, key string) error {
	if err := c.client.ZIncrBy(ctx, searchCountsKey, 1, key).Err(); err != nil {
		return fmt.Errorf("failed to count search %s: %w", key, err)
	}
	return nil
}

func (c *SearchCache) TopSearches(ctx context.Context, limit int64) ([]domain.SearchCount, error) {
	if limit <= 0 {
		return []domain.SearchCount{}, nil
	}
	entries, err := c.client.ZRevRangeWithScores(ctx, searchCountsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read top searches: %w", err)
	}
	top := make([]domain.SearchCount, 0, len(entries))
	for _, z := range entries {
		member, _ := z.Member.(string)
		top = append(top, domain.SearchCount{Query: member, Count: int64(z.Score)})
	}
	return top, nil
}
