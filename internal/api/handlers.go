package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/media"
)

const cursorSlotPrefix = "cursor:"

// getMedia handles GET /api/media. A feed widget paginates by echoing
// back the context id it received and setting more=1; the continuation
// cursor lives server-side in the cache, keyed by that context, and a
// request without more=1 clears it and starts the walk over.
func (s *Server) getMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		opts := media.Options{
			Type:     q.Get("type"),
			Tag:      q.Get("tag"),
			Count:    intParam(q.Get("count")),
			Limit:    intParam(q.Get("limit")),
			Children: boolParam(q.Get("children")),
			Paged:    true,
		}

		contextID := q.Get("context")
		if contextID == "" {
			contextID = uuid.NewString()
		}
		slot := cursorSlotPrefix + contextID

		if boolParam(q.Get("more")) {
			if cursor := s.loadCursor(r, slot); cursor != nil {
				opts.Cursor = cursor
			}
		} else {
			s.Cache.Delete(r.Context(), slot)
		}

		result := s.Media.GetMedia(r.Context(), q.Get("username"), opts)

		more := false
		if result.Next != nil {
			s.storeCursor(r, slot, result.Next)
			more = !result.Next.Exhausted
		}

		ok(w, map[string]any{
			"items":   aliasedList(result.Items),
			"context": contextID,
			"more":    more,
		})
	}
}

// getByType handles the /api/images, /api/videos and /api/albums
// shortcuts, which differ only in the media type they target.
func (s *Server) getByType(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		username := q.Get("username")
		count := intParam(q.Get("count"))

		var items []domain.Media
		switch kind {
		case "images":
			items = s.Media.GetImages(r.Context(), username, count)
		case "videos":
			items = s.Media.GetVideos(r.Context(), username, count)
		case "albums":
			items = s.Media.GetCarouselAlbums(r.Context(), username, count)
		}

		ok(w, map[string]any{"items": aliasedList(items)})
	}
}

func (s *Server) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := s.Media.GetProfile(r.Context(), r.URL.Query().Get("username"))
		if profile == nil {
			ok(w, map[string]any{})
			return
		}
		ok(w, profile)
	}
}

// getFeed serves the old Instagram Feed shape for migrating consumers.
func (s *Server) getFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		username := q.Get("username")
		count := intParam(q.Get("count"))

		var items []map[string]any
		if tag := q.Get("tag"); tag != "" {
			items = s.Legacy.RecentMediaByTag(r.Context(), tag, username, count)
		} else {
			items = s.Legacy.RecentMedia(r.Context(), username, count)
		}

		ok(w, map[string]any{"data": items})
	}
}

func (s *Server) loadCursor(r *http.Request, slot string) *media.Cursor {
	raw, found := s.Cache.Get(r.Context(), slot)
	if !found {
		return nil
	}
	var cursor media.Cursor
	if err := json.Unmarshal(raw, &cursor); err != nil {
		s.Logger.Warn("Dropping unreadable pagination cursor", "slot", slot, "error", err)
		s.Cache.Delete(r.Context(), slot)
		return nil
	}
	return &cursor
}

func (s *Server) storeCursor(r *http.Request, slot string, cursor *media.Cursor) {
	raw, err := json.Marshal(cursor)
	if err != nil {
		return
	}
	s.Cache.Set(r.Context(), slot, raw, s.cursorTTL())
}

func (s *Server) cursorTTL() time.Duration {
	if ttl := s.Config.Instagram.CacheTTL; ttl > 0 {
		return ttl
	}
	return time.Hour
}

func intParam(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func boolParam(v string) bool {
	switch v {
	case "1", "true", "yes":
		return true
	}
	return false
}
