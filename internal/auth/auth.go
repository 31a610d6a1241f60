// Package auth resolves the access credential for an account, renewing
// long-lived tokens that are close to expiry.
package auth

import (
	"context"
	"time"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
)

const (
	// RenewalWindow is how close to expiry a token is refreshed.
	RenewalWindow = 7 * 24 * time.Hour

	// RenewalPeriod is the lifetime of a freshly minted token.
	RenewalPeriod = 60 * 24 * time.Hour
)

// Manager resolves accounts with a usable access token. Resolve with an
// empty username returns the default (first authorized) account.
type Manager interface {
	Resolve(ctx context.Context, username string) (*domain.Account, error)
	ScheduleRenewal(ctx context.Context) error
}
