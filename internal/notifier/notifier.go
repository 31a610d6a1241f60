// Package notifier alerts an operator when the Instagram API reports an
// authorisation failure. Gating to at most one alert per day is the
// caller's responsibility.
package notifier

import (
	"context"

	"github.com/nbcommunication/instagram-media-display/pkg/config"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"go.uber.org/fx"
)

type Client interface {
	NotifyAuthError(ctx context.Context, detail string) error
}

// Opts holds dependencies for creating the notifier.
type Opts struct {
	fx.In
	Logger logger.Logger
	Config *config.Config
}

// New creates the Telegram notifier when a bot token is configured,
// otherwise a no-op that only logs.
func New(opts Opts) (Client, error) {
	if opts.Config.Telegram.Token == "" {
		opts.Logger.Info("No telegram token configured, operator notifications disabled")
		return &Noop{Logger: opts.Logger}, nil
	}
	return NewTelegram(opts.Config.Telegram.Token, opts.Config.Telegram.ChatID, opts.Logger)
}
