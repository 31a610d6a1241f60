package cache

import (
	"context"

	"github.com/nbcommunication/instagram-media-display/pkg/config"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"go.uber.org/fx"
)

// Opts holds dependencies for creating the cache backend.
type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New selects the cache backend from configuration: redis when enabled,
// otherwise the in-process cache.
func New(opts Opts) (Cache, error) {
	if opts.Config.Redis.Enabled {
		r, err := NewRedis(RedisConfig{
			Addr:     opts.Config.Redis.Addr,
			Password: opts.Config.Redis.Password,
			DB:       opts.Config.Redis.DB,
			Prefix:   opts.Config.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		opts.LC.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return r.Close()
			},
		})
		opts.Logger.Info("Using redis cache", "addr", opts.Config.Redis.Addr)
		return r, nil
	}

	m := NewMemory()
	opts.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			m.Stop()
			return nil
		},
	})
	return m, nil
}
