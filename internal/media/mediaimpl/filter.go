package mediaimpl

import (
	"regexp"
	"strings"

	"github.com/nbcommunication/instagram-media-display/internal/graph"
	"github.com/nbcommunication/instagram-media-display/internal/media"
)

var tagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// extractTags returns the lowercased hashtag tokens of a caption, hash
// stripped, in order of first appearance.
func extractTags(caption string) []string {
	matches := tagPattern.FindAllString(caption, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		tag := strings.ToLower(strings.TrimPrefix(match, "#"))
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

// filterPage applies the retrieval filters to one raw page. It derives
// hashtags, coerces videos to images when images were asked for and
// drops non-matching and URL-less items. Order is the API's.
func filterPage(items []graph.Media, opts media.Options) []graph.Media {
	wantTag := strings.ToLower(strings.TrimPrefix(opts.Tag, "#"))

	kept := make([]graph.Media, 0, len(items))

	for _, item := range items {
		item.Tags = extractTags(item.Caption)

		if opts.Type == graph.MediaTypeImage && item.MediaType != graph.MediaTypeImage {
			if item.MediaType == graph.MediaTypeVideo {
				item.MediaURL = item.ThumbnailURL
			}
			item.MediaType = graph.MediaTypeImage
		}

		if opts.Type != "" && item.MediaType != opts.Type {
			continue
		}
		if wantTag != "" && !hasTag(item.Tags, wantTag) {
			continue
		}
		if item.MediaURL == "" {
			continue
		}

		kept = append(kept, item)
	}

	return kept
}

// mergePage folds a filtered page into the walk's collection, keyed by
// media URL across every page seen so far. On a duplicate URL the last
// occurrence wins but keeps the first one's position; order is otherwise
// arrival order.
func mergePage(into []graph.Media, position map[string]int, page []graph.Media) []graph.Media {
	for _, item := range page {
		if at, ok := position[item.MediaURL]; ok {
			into[at] = item
			continue
		}
		position[item.MediaURL] = len(into)
		into = append(into, item)
	}
	return into
}
