package api

import "github.com/nbcommunication/instagram-media-display/internal/domain"

// aliased serializes a media record with the legacy property aliases
// consumers template against (alt/description, src/url, href/link). The
// canonical representation stays domain.Media; this only shapes output.
func aliased(item domain.Media) map[string]any {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}

	out := map[string]any{
		"id":          item.ID,
		"type":        item.Type,
		"alt":         item.Description,
		"description": item.Description,
		"src":         item.URL,
		"url":         item.URL,
		"tags":        tags,
		"created":     item.Created,
		"createdStr":  item.CreatedStr,
		"href":        item.Link,
		"link":        item.Link,
	}
	if item.Poster != "" {
		out["poster"] = item.Poster
	}
	if len(item.Children) > 0 {
		out["children"] = aliasedList(item.Children)
	}
	return out
}

func aliasedList(items []domain.Media) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, aliased(item))
	}
	return out
}
