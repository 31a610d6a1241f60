package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound API calls per key (one limiter per account).
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// KeyedLimiter is an in-memory Limiter implementation.
type KeyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

// NewKeyedLimiter creates a limiter allowing `requests` calls per `per`
// with a burst of `burst` per key.
func NewKeyedLimiter(requests int, per time.Duration, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Every(per / time.Duration(requests)),
		b:        burst,
	}
}

// Wait blocks until the key is allowed to proceed or ctx is done.
func (l *KeyedLimiter) Wait(ctx context.Context, key string) error {
	l.mu.Lock()
	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

var _ Limiter = (*KeyedLimiter)(nil)
