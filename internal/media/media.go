// Package media is the retrieval pipeline: it resolves an account's
// credential, walks the paginated media endpoints, filters pages against
// type/tag targets and assembles normalized records.
package media

import (
	"context"
	"time"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
)

// Cursor points into a paginated media walk. A zero Next with Exhausted
// set means the walk has seen the last page; passing such a cursor back
// returns an empty result without touching the network.
type Cursor struct {
	Next      string `json:"next,omitempty"`
	Exhausted bool   `json:"exhausted,omitempty"`
}

// Options controls one media retrieval.
type Options struct {
	// Count is the target number of items. Zero means a single page.
	Count int
	// Limit is the API page size. Zero uses the configured default.
	Limit int
	// Type keeps only media of one graph media type. IMAGE additionally
	// coerces videos into images by substituting their thumbnail.
	Type string
	// Tag keeps only media whose caption carries the hashtag. Tag scans
	// walk the account's history and are capped at a hard page ceiling.
	Tag string
	// Children resolves the items of carousel albums.
	Children bool
	// ChildrenTTL overrides the cache lifetime of child fetches.
	ChildrenTTL time.Duration
	// Cursor resumes a previous walk instead of starting at the media root.
	Cursor *Cursor
	// Paged asks for a continuation cursor in the result.
	Paged bool
}

// Result is one retrieval's output. Next is set only for paged requests.
type Result struct {
	Items []domain.Media `json:"items"`
	Next  *Cursor        `json:"next,omitempty"`
}

// Service is the public retrieval surface. Retrieval methods degrade
// gracefully: failures are logged and an empty value returned, so a feed
// widget renders nothing rather than erroring.
type Service interface {
	GetImages(ctx context.Context, username string, count int) []domain.Media
	GetVideos(ctx context.Context, username string, count int) []domain.Media
	GetVideo(ctx context.Context, username string) *domain.Media
	GetCarouselAlbums(ctx context.Context, username string, count int) []domain.Media
	GetCarouselAlbum(ctx context.Context, username string) *domain.Media
	GetMedia(ctx context.Context, username string, opts Options) Result
	GetProfile(ctx context.Context, username string) *domain.Profile
	// GetProfileWithToken fetches a profile with an explicit token instead
	// of a stored account. Used when authorizing a new account, so it
	// returns the error rather than degrading.
	GetProfileWithToken(ctx context.Context, token string) (*domain.Profile, error)
}
