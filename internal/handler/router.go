// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/oblog/internal/handler/api"
	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/repository"
	"github.com/olegiv/oblog/internal/service"
)

// RouterConfig wires the handlers into a router.
type RouterConfig struct {
	Content         *service.ContentService
	Auth            *service.AuthService
	Categories      repository.CategoryRepository
	Renderer        *render.Renderer
	SessionManager  *scs.SessionManager
	LoginProtection *middleware.LoginProtection
	DB              Pinger
	Logger          *slog.Logger

	// StaticFS is served under /static/.
	StaticFS fs.FS
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler

	// SiteURL is the public base URL; empty derives it from each request.
	SiteURL string
	// DisallowCrawlers makes robots.txt refuse every crawler.
	DisallowCrawlers bool

	CSRFKey        []byte
	IsDev          bool
	ServerAddr     string
	Version        string
	RequestTimeout time.Duration
}

// NewRouter builds the application router.
func NewRouter(cfg RouterConfig) chi.Router {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	frontendHandler := NewFrontendHandler(cfg.Content, cfg.Renderer, cfg.Categories, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Auth, cfg.Renderer, cfg.SessionManager, cfg.LoginProtection, cfg.Categories, cfg.Logger)
	healthHandler := NewHealthHandler(cfg.DB, cfg.Version)
	apiHandler := api.NewHandler(cfg.Content, cfg.Logger)
	seoHandler := NewSEOHandler(cfg.Content, cfg.SiteURL, cfg.DisallowCrawlers, cfg.Logger)

	csrfConfig := middleware.DefaultCSRFConfig(cfg.CSRFKey, cfg.IsDev, cfg.ServerAddr)
	csrfConfig.Logger = cfg.Logger

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestPath)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(chimw.RedirectSlashes)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDev)))

	r.Get(RouteHealth, healthHandler.Health)
	r.Get(RouteLive, healthHandler.Liveness)
	r.Get(RouteSitemap, seoHandler.Sitemap)
	r.Get(RouteRobots, seoHandler.Robots)

	if cfg.MetricsHandler != nil {
		r.Handle(RouteMetrics, cfg.MetricsHandler)
	}

	if cfg.StaticFS != nil {
		r.Handle(RouteStatic, http.StripPrefix("/static/", http.FileServer(http.FS(cfg.StaticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(cfg.SessionManager.LoadAndSave)
		r.Use(middleware.CSRF(csrfConfig))

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalLoadUser(cfg.SessionManager, cfg.Auth))

			r.Get(RouteRoot, frontendHandler.Home)
			r.Get(RouteCategory, frontendHandler.Category)
			r.Get(RouteArticle, frontendHandler.Article)
			r.Get(RouteSearch, frontendHandler.Search)

			r.Get(RouteLogin, authHandler.LoginForm)
			if cfg.LoginProtection != nil {
				r.With(cfg.LoginProtection.Middleware()).Post(RouteLogin, authHandler.Login)
			} else {
				r.Post(RouteLogin, authHandler.Login)
			}
			r.Get(RouteLogout, authHandler.Logout)
			r.Post(RouteLogout, authHandler.Logout)

			r.Mount("/api/v1", apiHandler.Routes(cfg.SessionManager))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.SessionManager))
			r.Use(middleware.LoadUser(cfg.SessionManager, cfg.Auth))

			r.Post(RouteComment, frontendHandler.CreateComment)
		})
	})

	r.NotFound(chi.Chain(
		cfg.SessionManager.LoadAndSave,
		middleware.OptionalLoadUser(cfg.SessionManager, cfg.Auth),
	).HandlerFunc(frontendHandler.NotFound).ServeHTTP)

	return r
}
