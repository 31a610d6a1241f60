package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nbcommunication/instagram-media-display/internal/cache"
	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/legacy"
	"github.com/nbcommunication/instagram-media-display/internal/media"
	"github.com/nbcommunication/instagram-media-display/pkg/config"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

// stubMedia scripts the service the handlers delegate to.
type stubMedia struct {
	result  media.Result
	profile *domain.Profile

	gotUsername string
	gotOptions  media.Options
}

func (s *stubMedia) GetImages(_ context.Context, username string, count int) []domain.Media {
	s.gotUsername = username
	return s.result.Items
}
func (s *stubMedia) GetVideos(_ context.Context, _ string, _ int) []domain.Media {
	return s.result.Items
}
func (s *stubMedia) GetVideo(_ context.Context, _ string) *domain.Media { return nil }
func (s *stubMedia) GetCarouselAlbums(_ context.Context, _ string, _ int) []domain.Media {
	return s.result.Items
}
func (s *stubMedia) GetCarouselAlbum(_ context.Context, _ string) *domain.Media { return nil }

func (s *stubMedia) GetMedia(_ context.Context, username string, opts media.Options) media.Result {
	s.gotUsername = username
	s.gotOptions = opts
	return s.result
}

func (s *stubMedia) GetProfile(_ context.Context, _ string) *domain.Profile { return s.profile }
func (s *stubMedia) GetProfileWithToken(_ context.Context, _ string) (*domain.Profile, error) {
	return s.profile, nil
}

type stubAccounts struct {
	account   *domain.Account
	addErr    error
	removeErr error
}

func (s *stubAccounts) Add(_ context.Context, token string) (*domain.Account, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return s.account, nil
}

func (s *stubAccounts) Remove(_ context.Context, _ string) error { return s.removeErr }

func (s *stubAccounts) List(_ context.Context, _ bool) (map[string]*domain.Account, error) {
	if s.account == nil {
		return map[string]*domain.Account{}, nil
	}
	return map[string]*domain.Account{s.account.Username: s.account}, nil
}

func (s *stubAccounts) UserID(_ context.Context, _ string) (int64, error) { return 0, nil }

func testServer(svc *stubMedia, accts *stubAccounts) (*Server, *cache.Memory) {
	cfg := &config.Config{}
	cfg.Instagram.DefaultCount = 4
	cfg.Instagram.CacheTTL = time.Hour

	if accts == nil {
		accts = &stubAccounts{}
	}

	mem := cache.NewMemory()
	s := New(Opts{
		Media:    svc,
		Accounts: accts,
		Legacy:   &legacy.Adapter{Media: svc, Config: cfg},
		Cache:    mem,
		Logger:   nopLogger{},
		Config:   cfg,
	})
	return s, mem
}

func item(id string) domain.Media {
	return domain.Media{
		ID:          id,
		Type:        "IMAGE",
		Description: "caption",
		URL:         "https://cdn/" + id + ".jpg",
		Link:        "https://instagram.com/p/" + id + "/",
		Created:     1714557600,
		CreatedStr:  "2024-05-01T10:00:00+0000",
	}
}

func TestGetMediaResponseShape(t *testing.T) {
	svc := &stubMedia{result: media.Result{
		Items: []domain.Media{item("m1")},
		Next:  &media.Cursor{Next: "https://graph.instagram.com/v20.0/x/media?after=pg2"},
	}}
	s, mem := testServer(svc, nil)
	defer mem.Stop()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/media?username=alice&count=4", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Items   []map[string]any `json:"items"`
		Context string           `json:"context"`
		More    bool             `json:"more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(body.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(body.Items))
	}
	got := body.Items[0]
	// Both alias names of each property are present.
	for _, pair := range [][2]string{{"alt", "description"}, {"src", "url"}, {"href", "link"}} {
		if got[pair[0]] != got[pair[1]] {
			t.Errorf("%s = %v and %s = %v must match", pair[0], got[pair[0]], pair[1], got[pair[1]])
		}
	}
	if body.Context == "" {
		t.Error("a context id must be assigned when the client sends none")
	}
	if !body.More {
		t.Error("more = false, want true while a next page exists")
	}
	if svc.gotUsername != "alice" {
		t.Errorf("username = %q", svc.gotUsername)
	}
}

func TestGetMediaContinuationUsesStoredCursor(t *testing.T) {
	next := "https://graph.instagram.com/v20.0/x/media?after=pg2"
	svc := &stubMedia{result: media.Result{
		Items: []domain.Media{item("m1")},
		Next:  &media.Cursor{Next: next},
	}}
	s, mem := testServer(svc, nil)
	defer mem.Stop()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/media?context=ctx1", nil))

	// Continuation request picks the stored cursor up again.
	svc.result.Next = &media.Cursor{Exhausted: true}
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/media?context=ctx1&more=1", nil))

	if svc.gotOptions.Cursor == nil || svc.gotOptions.Cursor.Next != next {
		t.Fatalf("cursor = %+v, want the stored next link", svc.gotOptions.Cursor)
	}

	var body struct {
		More bool `json:"more"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.More {
		t.Error("more = true, want false once the walk is exhausted")
	}

	// A fresh (non-continuation) request clears the slot.
	svc.gotOptions = media.Options{}
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/media?context=ctx1", nil))
	if svc.gotOptions.Cursor != nil {
		t.Errorf("cursor = %+v, want nil after a non-continuation request", svc.gotOptions.Cursor)
	}
}

func TestGetProfileEmptyOnFailure(t *testing.T) {
	s, mem := testServer(&stubMedia{}, nil)
	defer mem.Stop()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile?username=nobody", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with an empty body object", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "{}" {
		t.Errorf("body = %q, want {}", got)
	}
}

func TestAddAccount(t *testing.T) {
	accts := &stubAccounts{account: &domain.Account{
		Username:    "alice",
		UserID:      "17841400000000000",
		TokenRenews: time.Now().Add(60 * 24 * time.Hour),
	}}
	s, mem := testServer(&stubMedia{}, accts)
	defer mem.Stop()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(`{"token":"tok123"}`))
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var body accountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Username != "alice" {
		t.Errorf("username = %q", body.Username)
	}
}

func TestAddAccountRequiresToken(t *testing.T) {
	s, mem := testServer(&stubMedia{}, nil)
	defer mem.Stop()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRemoveAccountNotFound(t *testing.T) {
	s, mem := testServer(&stubMedia{}, &stubAccounts{removeErr: apperrors.ErrNotAuthorized})
	defer mem.Stop()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/accounts/nobody", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s, mem := testServer(&stubMedia{}, nil)
	defer mem.Stop()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}
