package mediaimpl

import (
	"context"
	"encoding/json"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher"
	"github.com/nbcommunication/instagram-media-display/internal/graph"
	"github.com/nbcommunication/instagram-media-display/internal/media"
)

// The API returns offsets without a colon, which time.RFC3339 rejects.
const graphTimeLayout = "2006-01-02T15:04:05-0700"

func parseTimestamp(ts string) int64 {
	if ts == "" {
		return 0
	}
	t, err := time.Parse(graphTimeLayout, ts)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, ts); err != nil {
			return 0
		}
	}
	return t.Unix()
}

// assemble converts one filtered raw item into the normalized record.
// Albums additionally resolve their children when asked to; a failed
// child fetch leaves the album childless rather than failing the call.
func (m *MediaImpl) assemble(ctx context.Context, acc *domain.Account, item graph.Media, opts media.Options) domain.Media {
	out := domain.Media{
		ID:          item.ID,
		Type:        item.MediaType,
		Description: html.EscapeString(item.Caption),
		URL:         item.MediaURL,
		Tags:        item.Tags,
		Created:     parseTimestamp(item.Timestamp),
		CreatedStr:  item.Timestamp,
		Link:        item.Permalink,
	}
	if item.MediaType == graph.MediaTypeVideo {
		out.Poster = item.ThumbnailURL
	}

	if item.MediaType == graph.MediaTypeCarouselAlbum && opts.Children {
		children, err := m.fetchChildren(ctx, acc, item.ID, opts)
		if err != nil {
			m.Logger.Warn("Could not fetch album children",
				"id", item.ID,
				"username", acc.Username,
				"error", err,
			)
		} else {
			out.Children = children
		}
	}

	return out
}

// fetchChildren resolves the items of one carousel album. Caption is not
// a returnable field on album children, so it is dropped from the field
// set. Children never have children of their own.
func (m *MediaImpl) fetchChildren(ctx context.Context, acc *domain.Account, id string, opts media.Options) ([]domain.Media, error) {
	fields := make([]string, 0, len(graph.MediaFields)-1)
	for _, f := range graph.MediaFields {
		if f != "caption" {
			fields = append(fields, f)
		}
	}

	params := url.Values{}
	params.Set("fields", strings.Join(fields, ","))
	params.Set("access_token", acc.Token)

	fopts := []fetcher.RequestOption{fetcher.WithUser(acc.Username)}
	if opts.ChildrenTTL > 0 {
		fopts = append(fopts, fetcher.WithCacheTTL(opts.ChildrenTTL))
	}

	body, err := m.Fetcher.Fetch(ctx, id+"/children", params, fopts...)
	if err != nil {
		return nil, err
	}

	var resp graph.MediaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	children := make([]domain.Media, 0, len(resp.Data))
	for _, child := range resp.Data {
		children = append(children, m.assemble(ctx, acc, child, media.Options{}))
	}
	return children, nil
}
