// Package fetcher defines the cached HTTP GET capability the rest of the
// application uses to talk to the Instagram Graph API.
package fetcher

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// Client fetches an API endpoint, serving repeated calls from cache.
// The endpoint is either a path relative to the configured base URL or an
// absolute URL (pagination next links come back absolute).
type Client interface {
	Fetch(ctx context.Context, endpoint string, params url.Values, opts ...RequestOption) (json.RawMessage, error)
}

// Request carries the per-call cache controls.
type Request struct {
	UseCache bool
	TTL      time.Duration
	User     string
}

type RequestOption func(*Request)

// NewRequest applies opts over the defaults.
func NewRequest(opts ...RequestOption) Request {
	r := Request{UseCache: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithoutCache forces the call onto the network, e.g. for token refresh.
func WithoutCache() RequestOption {
	return func(r *Request) {
		r.UseCache = false
	}
}

// WithCacheTTL overrides the default cache lifetime for this call.
func WithCacheTTL(ttl time.Duration) RequestOption {
	return func(r *Request) {
		r.TTL = ttl
	}
}

// WithUser scopes the cache key and the rate limiter to an account, so
// identical requests for different users never collide.
func WithUser(username string) RequestOption {
	return func(r *Request) {
		r.User = username
	}
}
