package mediaimpl

import (
	"context"
	"strings"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/graph"
	"github.com/nbcommunication/instagram-media-display/internal/media"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
)

// GetMedia is the general-purpose retrieval. Failures are logged and
// whatever was gathered before them is returned, so a broken upstream
// degrades a feed rather than breaking the page embedding it.
func (m *MediaImpl) GetMedia(ctx context.Context, username string, opts media.Options) media.Result {
	opts = m.normalize(opts)

	acc, err := m.Auth.Resolve(ctx, username)
	if err != nil {
		m.Logger.Error("Could not resolve account for media retrieval",
			"username", username,
			"error", err,
		)
		return media.Result{Items: []domain.Media{}}
	}

	raw, next, err := m.accumulate(ctx, acc, opts)
	if err != nil {
		if apperrors.IsNoData(err) {
			m.Logger.Warn("No media returned for user", "username", acc.Username)
		} else {
			m.Logger.Error("Media retrieval ended early",
				"username", acc.Username,
				"collected", len(raw),
				"error", err,
			)
		}
	}

	items := make([]domain.Media, 0, len(raw))
	for _, item := range raw {
		items = append(items, m.assemble(ctx, acc, item, opts))
	}

	return media.Result{Items: items, Next: next}
}

// normalize applies the configured defaults and bounds to the options.
// An unrecognized type filter is dropped rather than matching nothing.
//
// A tag scan cannot satisfy its count from one page, so it always walks
// full-size pages up to the hard page ceiling.
func (m *MediaImpl) normalize(opts media.Options) media.Options {
	cfg := m.Config.Instagram

	opts.Type = strings.ToUpper(opts.Type)
	if opts.Type != "" && !graph.ValidMediaType(opts.Type) {
		opts.Type = ""
	}

	if opts.Tag != "" {
		opts.Limit = cfg.MaxLimit
		if opts.Count <= 0 {
			opts.Count = cfg.DefaultCount
		}
	}
	if opts.Limit <= 0 {
		opts.Limit = cfg.PageLimit
	}
	if opts.Limit > cfg.MaxLimit {
		opts.Limit = cfg.MaxLimit
	}
	return opts
}
