// Package legacy reshapes normalized media into the flat schema of the
// old Instagram Feed API, for consumers migrating from the deprecated
// integration. Values the current API no longer provides (likes,
// comments, location, image sizes) are kept in place as nulls.
package legacy

import (
	"context"
	"strings"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/media"
	"github.com/nbcommunication/instagram-media-display/pkg/config"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Media  media.Service
	Config *config.Config
}

// Adapter is a thin edge adapter over the media service. It holds no
// state and does no fetching of its own.
type Adapter struct {
	Media  media.Service
	Config *config.Config
}

func New(opts Opts) *Adapter {
	return &Adapter{
		Media:  opts.Media,
		Config: opts.Config,
	}
}

// RecentMedia returns a user's most recent images in the old flat shape.
func (a *Adapter) RecentMedia(ctx context.Context, username string, count int) []map[string]any {
	return a.recent(ctx, username, "", count)
}

// RecentMediaByTag filters recent images by hashtag. The current API has
// no tag search, so this walks the account's history page by page until
// enough matches are found, capped at the configured page ceiling. Slow;
// prefer RecentMedia.
func (a *Adapter) RecentMediaByTag(ctx context.Context, tag, username string, count int) []map[string]any {
	return a.recent(ctx, username, tag, count)
}

func (a *Adapter) recent(ctx context.Context, username, tag string, count int) []map[string]any {
	if count <= 0 {
		count = a.Config.Instagram.DefaultCount
	}

	result := a.Media.GetMedia(ctx, username, media.Options{
		Type:  "IMAGE",
		Tag:   tag,
		Count: count,
		Limit: count,
	})
	profile := a.Media.GetProfile(ctx, username)

	data := make([]map[string]any, 0, len(result.Items))
	for _, item := range result.Items {
		data = append(data, reshape(item, profile))
	}
	return data
}

// reshape maps one normalized record into the old Instagram Feed item.
func reshape(item domain.Media, profile *domain.Profile) map[string]any {
	user := map[string]any{
		"id":              nil,
		"full_name":       nil,
		"profile_picture": nil,
		"username":        nil,
	}
	if profile != nil {
		user["id"] = profile.UserID
		user["full_name"] = profile.Username
		user["profile_picture"] = profile.ProfilePictureURL
		user["username"] = profile.Username
	}

	// The old API carried three sizes; only one URL exists now.
	image := map[string]any{
		"url":    item.URL,
		"width":  nil,
		"height": nil,
	}

	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}

	return map[string]any{
		"id":   item.ID,
		"user": user,
		"images": map[string]any{
			"thumbnail":           image,
			"low_resolution":      image,
			"standard_resolution": image,
		},
		"created_time": item.Created,
		"caption": map[string]any{
			"id":           nil,
			"text":         item.Description,
			"created_time": item.Created,
			"from":         user,
		},
		"user_has_liked": nil,
		"likes":          map[string]any{"count": nil},
		"tags":           tags,
		"filter":         nil,
		"comments":       map[string]any{"count": nil},
		"type":           strings.ToLower(item.Type),
		"link":           item.Link,
		"location": map[string]any{
			"latitude":  nil,
			"longitude": nil,
			"name":      nil,
			"id":        nil,
		},
		"attribution":    nil,
		"users_in_photo": nil,
	}
}
