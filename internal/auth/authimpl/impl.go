package authimpl

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/nbcommunication/instagram-media-display/internal/auth"
	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher"
	"github.com/nbcommunication/instagram-media-display/internal/graph"
	"github.com/nbcommunication/instagram-media-display/internal/repositories/account"
	"github.com/nbcommunication/instagram-media-display/pkg/config"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Accounts account.Repository
	Fetcher  fetcher.Client
	Logger   logger.Logger
	Config   *config.Config
}

type AuthImpl struct {
	Accounts account.Repository
	Fetcher  fetcher.Client
	Logger   logger.Logger
	Config   *config.Config
}

func New(opts Opts) *AuthImpl {
	return &AuthImpl{
		Accounts: opts.Accounts,
		Fetcher:  opts.Fetcher,
		Logger:   opts.Logger,
		Config:   opts.Config,
	}
}

var _ auth.Manager = (*AuthImpl)(nil)

// Resolve looks up the account and, when its token is inside the renewal
// window, synchronously exchanges it for a fresh one. A failed refresh is
// not fatal: the current call proceeds with the stale token.
func (a *AuthImpl) Resolve(ctx context.Context, username string) (*domain.Account, error) {
	var (
		acc *domain.Account
		err error
	)
	if username == "" {
		acc, err = a.Accounts.GetDefault(ctx)
	} else {
		acc, err = a.Accounts.GetByUsername(ctx, username)
	}
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, apperrors.ErrNotAuthorized
		}
		return nil, err
	}

	if time.Until(acc.TokenRenews) < auth.RenewalWindow {
		if err := a.refresh(ctx, acc); err != nil {
			a.Logger.Error("Could not refresh long-lived access token",
				"username", acc.Username,
				"error", err,
			)
		} else {
			a.Logger.Info("Long-lived access token refreshed", "username", acc.Username)
		}
	}

	return acc, nil
}

// refresh exchanges the current token, never through the cache, and
// persists the new value with a renewal date a full period out. Concurrent
// refreshes for one account are tolerated: the remote API accepts
// redundant exchanges and the last writer wins.
func (a *AuthImpl) refresh(ctx context.Context, acc *domain.Account) error {
	params := url.Values{}
	params.Set("grant_type", "ig_refresh_token")
	params.Set("access_token", acc.Token)

	body, err := a.Fetcher.Fetch(ctx, "refresh_access_token", params, fetcher.WithoutCache())
	if err != nil {
		return apperrors.Join(apperrors.ErrRefreshFailed, err)
	}

	var resp graph.RefreshResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" {
		return apperrors.ErrRefreshFailed
	}

	renews := time.Now().Add(auth.RenewalPeriod)
	if err := a.Accounts.UpdateToken(ctx, acc.Username, resp.AccessToken, renews); err != nil {
		return apperrors.Join(apperrors.ErrRefreshFailed, err)
	}

	acc.Token = resp.AccessToken
	acc.TokenRenews = renews
	return nil
}
