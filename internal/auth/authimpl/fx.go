package authimpl

import (
	"github.com/nbcommunication/instagram-media-display/internal/auth"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(auth.Manager)),
		),
	),
)
