// Package accounts manages the set of authorized Instagram accounts.
package accounts

import (
	"context"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
)

// Service adds, removes and lists authorized accounts. Unlike the
// retrieval surface, mutations report their failures to the caller.
type Service interface {
	// Add authorizes an account: it fetches the profile with the supplied
	// long-lived token and stores username, user id, account type, media
	// count and the token's renewal date.
	Add(ctx context.Context, token string) (*domain.Account, error)
	Remove(ctx context.Context, username string) error
	// List returns all accounts keyed by username. With refresh set, each
	// account's profile is re-fetched and its media count updated first.
	List(ctx context.Context, refresh bool) (map[string]*domain.Account, error)
	// UserID returns the numeric id of an authorized account.
	UserID(ctx context.Context, username string) (int64, error)
}
