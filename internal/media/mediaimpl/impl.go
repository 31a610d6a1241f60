package mediaimpl

import (
	"context"

	"github.com/nbcommunication/instagram-media-display/internal/auth"
	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher"
	"github.com/nbcommunication/instagram-media-display/internal/graph"
	"github.com/nbcommunication/instagram-media-display/internal/media"
	"github.com/nbcommunication/instagram-media-display/internal/repositories/account"
	"github.com/nbcommunication/instagram-media-display/pkg/config"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Auth     auth.Manager
	Accounts account.Repository
	Fetcher  fetcher.Client
	Logger   logger.Logger
	Config   *config.Config
}

type MediaImpl struct {
	Auth     auth.Manager
	Accounts account.Repository
	Fetcher  fetcher.Client
	Logger   logger.Logger
	Config   *config.Config
}

func New(opts Opts) *MediaImpl {
	return &MediaImpl{
		Auth:     opts.Auth,
		Accounts: opts.Accounts,
		Fetcher:  opts.Fetcher,
		Logger:   opts.Logger,
		Config:   opts.Config,
	}
}

var _ media.Service = (*MediaImpl)(nil)

func (m *MediaImpl) GetImages(ctx context.Context, username string, count int) []domain.Media {
	return m.byType(ctx, username, graph.MediaTypeImage, count)
}

func (m *MediaImpl) GetVideos(ctx context.Context, username string, count int) []domain.Media {
	return m.byType(ctx, username, graph.MediaTypeVideo, count)
}

func (m *MediaImpl) GetVideo(ctx context.Context, username string) *domain.Media {
	return first(m.GetVideos(ctx, username, 1))
}

func (m *MediaImpl) GetCarouselAlbums(ctx context.Context, username string, count int) []domain.Media {
	return m.byType(ctx, username, graph.MediaTypeCarouselAlbum, count)
}

func (m *MediaImpl) GetCarouselAlbum(ctx context.Context, username string) *domain.Media {
	return first(m.GetCarouselAlbums(ctx, username, 1))
}

// byType builds the options for the typed shortcuts. An IMAGE request can
// satisfy its count from a single page because every item coerces to an
// image; videos and albums are sparse, so those walk full-size pages until
// the count is met.
func (m *MediaImpl) byType(ctx context.Context, username, mediaType string, count int) []domain.Media {
	if count <= 0 {
		count = m.Config.Instagram.DefaultCount
	}

	opts := media.Options{
		Type:     mediaType,
		Count:    count,
		Children: mediaType == graph.MediaTypeCarouselAlbum,
	}
	if mediaType == graph.MediaTypeImage {
		opts.Limit = count
	} else {
		opts.Limit = m.Config.Instagram.MaxLimit
	}

	return m.GetMedia(ctx, username, opts).Items
}

func first(items []domain.Media) *domain.Media {
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}
