package fx

import (
	"github.com/nbcommunication/instagram-media-display/internal/repositories/account"
	"go.uber.org/fx"
)

var Module = fx.Options(
	account.Module,
)
