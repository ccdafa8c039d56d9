package cache

import (
	"context"
	"time"
)

// ResponseCache stores serialized response bodies for expensive read
// endpoints. A miss is a nil body, not an error.
type ResponseCache interface {
	// Get returns the cached body for key, or nil on miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores body under key with the given TTL.
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error

	// Invalidate deletes the given keys. Write paths that mutate the
	// underlying data call this for the keys they know they dirty.
	Invalidate(ctx context.Context, keys ...string) error
}
