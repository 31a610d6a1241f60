package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"github.com/nbcommunication/instagram-media-display/internal/accounts/accountsimpl"
	"github.com/nbcommunication/instagram-media-display/internal/api"
	"github.com/nbcommunication/instagram-media-display/internal/auth"
	"github.com/nbcommunication/instagram-media-display/internal/auth/authimpl"
	"github.com/nbcommunication/instagram-media-display/internal/cache"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher"
	"github.com/nbcommunication/instagram-media-display/internal/fetcher/fetcherimpl"
	"github.com/nbcommunication/instagram-media-display/internal/legacy"
	"github.com/nbcommunication/instagram-media-display/internal/media/mediaimpl"
	_ "github.com/nbcommunication/instagram-media-display/internal/migrations"
	"github.com/nbcommunication/instagram-media-display/internal/notifier"
	repositories "github.com/nbcommunication/instagram-media-display/internal/repositories/fx"
	"github.com/nbcommunication/instagram-media-display/pkg/config"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"github.com/nbcommunication/instagram-media-display/pkg/pgx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		cache.New,
		notifier.New,
		legacy.New,
		api.New,
	),
	fx.Provide(
		fx.Annotate(
			fetcherimpl.New,
			fx.As(new(fetcher.Client)),
		),
	),
	repositories.Module,
	authimpl.Module,
	mediaimpl.Module,
	accountsimpl.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(c *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	return goose.Up(db, filepath.Join(wd, "internal", "migrations"))
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, server *api.Server, authManager auth.Manager) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx := context.Background()

			if err := authManager.ScheduleRenewal(ctx); err != nil {
				log.Error("Could not schedule token renewal", "error", err)
			}

			go func() {
				log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("Server failed to start", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
