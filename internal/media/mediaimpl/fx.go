package mediaimpl

import (
	"github.com/nbcommunication/instagram-media-display/internal/media"
	"go.uber.org/fx"
)

var Module = fx.Module("media",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(media.Service)),
		),
	),
)
