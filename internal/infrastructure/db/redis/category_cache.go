package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesKey      = "catalog:categories"
	defaultCategoryTTL = 5 * time.Minute
)

// CategoryCache stores the distinct product category list.
// Key format: catalog:categories
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache wraps client. A non-positive ttl falls back to 5 minutes.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = defaultCategoryTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// Get returns the cached list. ok is false on a miss.
func (c *CategoryCache) Get(ctx context.Context) (categories []string, ok bool, err error) {
	raw, err := c.client.Get(ctx, categoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("category cache get: %w", err)
	}
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, false, fmt.Errorf("category cache decode: %w", err)
	}
	return categories, true, nil
}

// Set stores the list until the TTL expires.
func (c *CategoryCache) Set(ctx context.Context, categories []string) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("category cache encode: %w", err)
	}
	return c.client.Set(ctx, categoriesKey, raw, c.ttl).Err()
}

// Invalidate drops the cached list so the next read recomputes it.
func (c *CategoryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, categoriesKey).Err()
}
