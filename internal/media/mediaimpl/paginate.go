package mediaimpl

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher"
	"github.com/nbcommunication/instagram-media-display/internal/graph"
	"github.com/nbcommunication/instagram-media-display/internal/media"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
)

// accumulate walks the account's media pages, filtering each page and
// merging the survivors until the target count is met or the pages run
// out. It returns the collected raw items, the continuation cursor for
// paged requests, and the error that ended the walk early, if any — the
// items gathered before a mid-walk failure are still returned.
func (m *MediaImpl) accumulate(ctx context.Context, acc *domain.Account, opts media.Options) ([]graph.Media, *media.Cursor, error) {
	if opts.Cursor != nil && opts.Cursor.Exhausted {
		return nil, opts.Cursor, nil
	}

	endpoint := acc.UserID + "/media"
	params := url.Values{}
	params.Set("fields", strings.Join(graph.MediaFields, ","))
	params.Set("access_token", acc.Token)
	params.Set("limit", strconv.Itoa(opts.Limit))

	// A continuation cursor is the absolute next link of a previous walk,
	// query string included, so no parameters are added.
	if opts.Cursor != nil && opts.Cursor.Next != "" {
		endpoint = opts.Cursor.Next
		params = nil
	}

	maxPages := 0
	if opts.Tag != "" {
		maxPages = m.Config.Instagram.TagPageCeiling
	}

	var items []graph.Media
	var next string
	position := make(map[string]int)

	for page := 0; ; page++ {
		body, err := m.Fetcher.Fetch(ctx, endpoint, params, fetcher.WithUser(acc.Username))
		if err != nil {
			return items, pagedCursor(opts, next), err
		}

		var resp graph.MediaResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return items, pagedCursor(opts, next), apperrors.Join(apperrors.ErrRemoteRequest, err)
		}
		if page == 0 && !resp.HasMedia() {
			return items, pagedCursor(opts, ""), apperrors.ErrNoData
		}

		items = mergePage(items, position, filterPage(resp.Data, opts))
		next = resp.Next()

		if next == "" {
			break
		}
		if opts.Count <= 0 || len(items) >= opts.Count {
			break
		}
		if maxPages > 0 && page+1 >= maxPages {
			m.Logger.Warn("Tag scan stopped at the page ceiling",
				"tag", opts.Tag,
				"pages", maxPages,
				"collected", len(items),
			)
			break
		}

		endpoint = next
		params = nil
	}

	if opts.Count > 0 && len(items) > opts.Count {
		items = items[:opts.Count]
	}

	return items, pagedCursor(opts, next), nil
}

// pagedCursor builds the hand-back cursor for paged requests. An empty
// next link marks the walk exhausted, which short-circuits later calls.
func pagedCursor(opts media.Options, next string) *media.Cursor {
	if !opts.Paged {
		return nil
	}
	if next == "" {
		return &media.Cursor{Exhausted: true}
	}
	return &media.Cursor{Next: next}
}
