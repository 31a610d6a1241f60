package accountsimpl

import (
	"context"
	"strconv"
	"time"

	"github.com/nbcommunication/instagram-media-display/internal/accounts"
	"github.com/nbcommunication/instagram-media-display/internal/auth"
	"github.com/nbcommunication/instagram-media-display/internal/domain"
	"github.com/nbcommunication/instagram-media-display/internal/media"
	"github.com/nbcommunication/instagram-media-display/internal/repositories/account"
	apperrors "github.com/nbcommunication/instagram-media-display/pkg/errors"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Accounts account.Repository
	Media    media.Service
	Logger   logger.Logger
}

type AccountsImpl struct {
	Accounts account.Repository
	Media    media.Service
	Logger   logger.Logger
}

func New(opts Opts) *AccountsImpl {
	return &AccountsImpl{
		Accounts: opts.Accounts,
		Media:    opts.Media,
		Logger:   opts.Logger,
	}
}

var _ accounts.Service = (*AccountsImpl)(nil)

func (a *AccountsImpl) Add(ctx context.Context, token string) (*domain.Account, error) {
	profile, err := a.Media.GetProfileWithToken(ctx, token)
	if err != nil {
		return nil, apperrors.Wrap(err, "could not verify token against the api")
	}

	acc := domain.Account{
		Username:    profile.Username,
		Token:       token,
		UserID:      profile.UserID,
		AccountType: profile.AccountType,
		MediaCount:  profile.MediaCount,
		TokenRenews: time.Now().Add(auth.RenewalPeriod),
	}
	if err := a.Accounts.Create(ctx, acc); err != nil {
		return nil, err
	}

	a.Logger.Info("Account authorized", "username", acc.Username, "user_id", acc.UserID)
	return &acc, nil
}

func (a *AccountsImpl) Remove(ctx context.Context, username string) error {
	if err := a.Accounts.Delete(ctx, username); err != nil {
		if apperrors.Is(err, account.ErrNotFound) {
			return apperrors.ErrNotAuthorized
		}
		return err
	}
	a.Logger.Info("Account removed", "username", username)
	return nil
}

func (a *AccountsImpl) List(ctx context.Context, refresh bool) (map[string]*domain.Account, error) {
	if refresh {
		a.refreshMediaCounts(ctx)
	}

	all, err := a.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*domain.Account, len(all))
	for _, acc := range all {
		byName[acc.Username] = acc
	}
	return byName, nil
}

func (a *AccountsImpl) UserID(ctx context.Context, username string) (int64, error) {
	acc, err := a.Accounts.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, account.ErrNotFound) {
			return 0, apperrors.ErrNotAuthorized
		}
		return 0, err
	}

	id, err := strconv.ParseInt(acc.UserID, 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(err, "stored user id is not numeric")
	}
	return id, nil
}

// refreshMediaCounts re-fetches every account's profile; GetProfile
// writes the fresh media count back to the store. Failures are already
// logged there and skipped here.
func (a *AccountsImpl) refreshMediaCounts(ctx context.Context) {
	all, err := a.Accounts.List(ctx)
	if err != nil {
		a.Logger.Warn("Could not list accounts for refresh", "error", err)
		return
	}
	for _, acc := range all {
		a.Media.GetProfile(ctx, acc.Username)
	}
}
