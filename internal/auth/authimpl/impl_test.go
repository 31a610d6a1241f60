package authimpl

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/nbcommunication/instagram-media-display/internal/auth"
	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher"
	"github.com/nbcommunication/instagram-media-display/internal/repositories/account"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

type fakeRepo struct {
	accounts []*domain.Account

	updatedUsername string
	updatedToken    string
	updatedRenews   time.Time
	updateErr       error
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, acc := range f.accounts {
		if acc.Username == username {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, account.ErrNotFound
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID string) (*domain.Account, error) {
	for _, acc := range f.accounts {
		if acc.UserID == userID {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, account.ErrNotFound
}

func (f *fakeRepo) GetDefault(_ context.Context) (*domain.Account, error) {
	if len(f.accounts) == 0 {
		return nil, account.ErrNotFound
	}
	cp := *f.accounts[0]
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*domain.Account, error) {
	return f.accounts, nil
}

func (f *fakeRepo) Create(_ context.Context, _ domain.Account) error { return nil }

func (f *fakeRepo) UpdateToken(_ context.Context, username, token string, renews time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedUsername = username
	f.updatedToken = token
	f.updatedRenews = renews
	return nil
}

func (f *fakeRepo) UpdateMediaCount(_ context.Context, _ string, _ int) error { return nil }
func (f *fakeRepo) Delete(_ context.Context, _ string) error                  { return nil }

type fakeFetcher struct {
	body     json.RawMessage
	err      error
	calls    int
	endpoint string
	params   url.Values
	request  fetcher.Request
}

func (f *fakeFetcher) Fetch(_ context.Context, endpoint string, params url.Values, opts ...fetcher.RequestOption) (json.RawMessage, error) {
	f.calls++
	f.endpoint = endpoint
	f.params = params
	f.request = fetcher.NewRequest(opts...)
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

func newTestAuth(repo *fakeRepo, fc *fakeFetcher) *AuthImpl {
	return &AuthImpl{
		Accounts: repo,
		Fetcher:  fc,
		Logger:   nopLogger{},
	}
}

func TestResolveDefaultAccount(t *testing.T) {
	repo := &fakeRepo{accounts: []*domain.Account{
		{Username: "first", Token: "tok-1", TokenRenews: time.Now().Add(50 * 24 * time.Hour)},
		{Username: "second", Token: "tok-2", TokenRenews: time.Now().Add(50 * 24 * time.Hour)},
	}}
	fc := &fakeFetcher{}

	acc, err := newTestAuth(repo, fc).Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if acc.Username != "first" {
		t.Errorf("Resolve() username = %q, want %q", acc.Username, "first")
	}
	if fc.calls != 0 {
		t.Errorf("fetcher calls = %d, want 0 for a token outside the renewal window", fc.calls)
	}
}

func TestResolveUnknownAccount(t *testing.T) {
	repo := &fakeRepo{}
	fc := &fakeFetcher{}

	_, err := newTestAuth(repo, fc).Resolve(context.Background(), "nobody")
	if !errors.Is(err, apperrors.ErrNotAuthorized) {
		t.Fatalf("Resolve() error = %v, want ErrNotAuthorized", err)
	}
}

func TestResolveRefreshesExpiringToken(t *testing.T) {
	repo := &fakeRepo{accounts: []*domain.Account{
		{Username: "expiring", Token: "old-token", TokenRenews: time.Now().Add(3 * 24 * time.Hour)},
	}}
	fc := &fakeFetcher{body: json.RawMessage(`{"access_token":"new-token","token_type":"bearer","expires_in":5183944}`)}

	acc, err := newTestAuth(repo, fc).Resolve(context.Background(), "expiring")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if fc.calls != 1 {
		t.Fatalf("fetcher calls = %d, want 1", fc.calls)
	}
	if fc.endpoint != "refresh_access_token" {
		t.Errorf("endpoint = %q, want refresh_access_token", fc.endpoint)
	}
	if got := fc.params.Get("grant_type"); got != "ig_refresh_token" {
		t.Errorf("grant_type = %q, want ig_refresh_token", got)
	}
	if got := fc.params.Get("access_token"); got != "old-token" {
		t.Errorf("access_token param = %q, want the current token", got)
	}
	if fc.request.UseCache {
		t.Error("token refresh must bypass the cache")
	}

	if acc.Token != "new-token" {
		t.Errorf("resolved token = %q, want new-token", acc.Token)
	}
	if repo.updatedToken != "new-token" {
		t.Errorf("persisted token = %q, want new-token", repo.updatedToken)
	}
	wantRenews := time.Now().Add(auth.RenewalPeriod)
	if diff := repo.updatedRenews.Sub(wantRenews); diff < -time.Minute || diff > time.Minute {
		t.Errorf("persisted renewal date %v not within a minute of %v", repo.updatedRenews, wantRenews)
	}
}

func TestResolveRefreshFailureIsNotFatal(t *testing.T) {
	repo := &fakeRepo{accounts: []*domain.Account{
		{Username: "expiring", Token: "old-token", TokenRenews: time.Now().Add(time.Hour)},
	}}
	fc := &fakeFetcher{err: apperrors.ErrRemoteRequest}

	acc, err := newTestAuth(repo, fc).Resolve(context.Background(), "expiring")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil when only the refresh fails", err)
	}
	if acc.Token != "old-token" {
		t.Errorf("resolved token = %q, want the stale token to survive", acc.Token)
	}
	if repo.updatedToken != "" {
		t.Errorf("UpdateToken called with %q, want no persistence on failure", repo.updatedToken)
	}
}

func TestResolveRefreshRejectsEmptyToken(t *testing.T) {
	repo := &fakeRepo{accounts: []*domain.Account{
		{Username: "expiring", Token: "old-token", TokenRenews: time.Now().Add(time.Hour)},
	}}
	fc := &fakeFetcher{body: json.RawMessage(`{"access_token":""}`)}

	acc, err := newTestAuth(repo, fc).Resolve(context.Background(), "expiring")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if acc.Token != "old-token" {
		t.Errorf("resolved token = %q, want old-token", acc.Token)
	}
}

func TestSweepRefreshesOnlyExpiring(t *testing.T) {
	repo := &fakeRepo{accounts: []*domain.Account{
		{Username: "fresh", Token: "tok-fresh", TokenRenews: time.Now().Add(40 * 24 * time.Hour)},
		{Username: "expiring", Token: "tok-old", TokenRenews: time.Now().Add(2 * 24 * time.Hour)},
	}}
	fc := &fakeFetcher{body: json.RawMessage(`{"access_token":"tok-new"}`)}

	newTestAuth(repo, fc).sweep(context.Background())

	if fc.calls != 1 {
		t.Fatalf("fetcher calls = %d, want 1", fc.calls)
	}
	if repo.updatedUsername != "expiring" {
		t.Errorf("refreshed account = %q, want expiring", repo.updatedUsername)
	}
}
