// Package api exposes the retrieval pipeline over HTTP for consuming
// feed widgets, plus the account administration endpoints.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nbcommunication/instagram-media-display/internal/accounts"
	"github.com/nbcommunication/instagram-media-display/internal/cache"
	"github.com/nbcommunication/instagram-media-display/internal/legacy"
	"github.com/nbcommunication/instagram-media-display/internal/media"
	"github.com/nbcommunication/instagram-media-display/pkg/config"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Media    media.Service
	Accounts accounts.Service
	Legacy   *legacy.Adapter
	Cache    cache.Cache
	Logger   logger.Logger
	Config   *config.Config
}

type Server struct {
	Media    media.Service
	Accounts accounts.Service
	Legacy   *legacy.Adapter
	Cache    cache.Cache
	Logger   logger.Logger
	Config   *config.Config

	router chi.Router
}

func New(opts Opts) *Server {
	s := &Server{
		Media:    opts.Media,
		Accounts: opts.Accounts,
		Legacy:   opts.Legacy,
		Cache:    opts.Cache,
		Logger:   opts.Logger,
		Config:   opts.Config,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.health())

	r.Route("/api", func(r chi.Router) {
		r.Get("/media", s.getMedia())
		r.Get("/images", s.getByType("images"))
		r.Get("/videos", s.getByType("videos"))
		r.Get("/albums", s.getByType("albums"))
		r.Get("/profile", s.getProfile())
		r.Get("/feed", s.getFeed())

		r.Get("/accounts", s.listAccounts())
		r.Post("/accounts", s.addAccount())
		r.Delete("/accounts/{username}", s.removeAccount())
	})

	return r
}

func (s *Server) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}
}
