// Package cache provides the keyed TTL cache used to store API responses
// and pagination cursors.
package cache

import (
	"context"
	"time"
)

// Cache defines the interface for cache backends.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}
