package accountsimpl

import (
	"github.com/nbcommunication/instagram-media-display/internal/accounts"
	"go.uber.org/fx"
)

var Module = fx.Module("accounts",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(accounts.Service)),
		),
	),
)
