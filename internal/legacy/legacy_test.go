package legacy

import (
	"context"
	"testing"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/media"
	"github.com/nbcommunication/instagram-media-display/pkg/config"
)

type stubMedia struct {
	result  media.Result
	profile *domain.Profile

	gotOptions media.Options
}

func (s *stubMedia) GetImages(_ context.Context, _ string, _ int) []domain.Media { return nil }
func (s *stubMedia) GetVideos(_ context.Context, _ string, _ int) []domain.Media { return nil }
func (s *stubMedia) GetVideo(_ context.Context, _ string) *domain.Media          { return nil }
func (s *stubMedia) GetCarouselAlbums(_ context.Context, _ string, _ int) []domain.Media {
	return nil
}
func (s *stubMedia) GetCarouselAlbum(_ context.Context, _ string) *domain.Media { return nil }

func (s *stubMedia) GetMedia(_ context.Context, _ string, opts media.Options) media.Result {
	s.gotOptions = opts
	return s.result
}

func (s *stubMedia) GetProfile(_ context.Context, _ string) *domain.Profile { return s.profile }
func (s *stubMedia) GetProfileWithToken(_ context.Context, _ string) (*domain.Profile, error) {
	return s.profile, nil
}

func testAdapter(stub *stubMedia) *Adapter {
	cfg := &config.Config{}
	cfg.Instagram.DefaultCount = 4
	return &Adapter{Media: stub, Config: cfg}
}

func TestRecentMediaShape(t *testing.T) {
	stub := &stubMedia{
		result: media.Result{Items: []domain.Media{{
			ID:          "m1",
			Type:        "IMAGE",
			Description: "first light #dawn",
			URL:         "https://cdn/m1.jpg",
			Tags:        []string{"dawn"},
			Created:     1714557600,
			CreatedStr:  "2024-05-01T10:00:00+0000",
			Link:        "https://instagram.com/p/m1/",
		}}},
		profile: &domain.Profile{
			UserID:            "17841400000000000",
			Username:          "alice",
			ProfilePictureURL: "https://cdn/alice.jpg",
		},
	}

	items := testAdapter(stub).RecentMedia(context.Background(), "alice", 0)

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	item := items[0]

	if item["id"] != "m1" || item["type"] != "image" || item["link"] != "https://instagram.com/p/m1/" {
		t.Errorf("item = %v", item)
	}
	if item["created_time"] != int64(1714557600) {
		t.Errorf("created_time = %v", item["created_time"])
	}

	user, ok := item["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["id"] != "17841400000000000" {
		t.Errorf("user = %v", item["user"])
	}

	images, ok := item["images"].(map[string]any)
	if !ok {
		t.Fatalf("images = %v", item["images"])
	}
	for _, size := range []string{"thumbnail", "low_resolution", "standard_resolution"} {
		img, ok := images[size].(map[string]any)
		if !ok || img["url"] != "https://cdn/m1.jpg" {
			t.Errorf("images[%s] = %v", size, images[size])
		}
		if img["width"] != nil || img["height"] != nil {
			t.Errorf("images[%s] dimensions must be null", size)
		}
	}

	// Fields the current API cannot supply stay in place as nulls.
	for _, key := range []string{"user_has_liked", "filter", "attribution", "users_in_photo"} {
		if item[key] != nil {
			t.Errorf("%s = %v, want nil", key, item[key])
		}
	}

	if stub.gotOptions.Type != "IMAGE" || stub.gotOptions.Count != 4 {
		t.Errorf("options = %+v, want IMAGE with the default count", stub.gotOptions)
	}
}

func TestRecentMediaMissingProfile(t *testing.T) {
	stub := &stubMedia{
		result: media.Result{Items: []domain.Media{{ID: "m1", Type: "IMAGE", URL: "https://cdn/m1.jpg"}}},
	}

	items := testAdapter(stub).RecentMedia(context.Background(), "alice", 1)

	user := items[0]["user"].(map[string]any)
	if user["username"] != nil {
		t.Errorf("user = %v, want all-null without a profile", user)
	}
}

func TestRecentMediaByTag(t *testing.T) {
	stub := &stubMedia{result: media.Result{}}

	testAdapter(stub).RecentMediaByTag(context.Background(), "dawn", "alice", 6)

	if stub.gotOptions.Tag != "dawn" || stub.gotOptions.Count != 6 {
		t.Errorf("options = %+v", stub.gotOptions)
	}
}
