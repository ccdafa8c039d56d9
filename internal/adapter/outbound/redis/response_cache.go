package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/market-scout/marketscout/internal/port/outbound/cache"
)

// responseCache implements cache.ResponseCache.
type responseCache struct {
	client    *redis.Client
	namespace string
}

// NewResponseCache creates a new ResponseCache.
func NewResponseCache(client *redis.Client, namespace string) cache.ResponseCache {
	return &responseCache{
		client:    client,
		namespace: namespace,
	}
}

func (c *responseCache) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached response: %w", err)
	}
	return body, nil
}

func (c *responseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache response: %w", err)
	}
	return nil
}

func (c *responseCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}

	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached responses: %w", err)
	}
	return nil
}

func (c *responseCache) key(suffix string) string {
	return c.namespace + ":" + suffix
}
