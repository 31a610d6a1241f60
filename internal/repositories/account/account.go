package account

import (
	"context"
	"errors"
	"time"

	"github.com/nbcommunication/instagram-media-display/internal/domain"
)

var (
	ErrNotFound     = errors.New("account not found")
	ErrCannotCreate = errors.New("error create account")
)

// Repository persists authorized Instagram accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	// GetDefault returns the first authorized account.
	GetDefault(ctx context.Context) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Create(ctx context.Context, acc domain.Account) error
	UpdateToken(ctx context.Context, username, token string, renews time.Time) error
	UpdateMediaCount(ctx context.Context, username string, count int) error
	Delete(ctx context.Context, username string) error
}
