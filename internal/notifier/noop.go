package notifier

import (
	"context"

	"github.com/nbcommunication/instagram-media-display/pkg/logger"
)

// Noop logs the alert and does nothing else.
type Noop struct {
	Logger logger.Logger
}

func (n *Noop) NotifyAuthError(_ context.Context, detail string) error {
	n.Logger.Warn("Instagram API authorisation error", "response", detail)
	return nil
}

var _ Client = (*Noop)(nil)
