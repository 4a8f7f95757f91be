// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command oblog runs the blog server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/docgen"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/oblog/internal/cache"
	"github.com/olegiv/oblog/internal/config"
	"github.com/olegiv/oblog/internal/handler"
	"github.com/olegiv/oblog/internal/logging"
	"github.com/olegiv/oblog/internal/metrics"
	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/repository"
	"github.com/olegiv/oblog/internal/service"
	"github.com/olegiv/oblog/internal/session"
	"github.com/olegiv/oblog/internal/store"
	"github.com/olegiv/oblog/internal/version"
	"github.com/olegiv/oblog/web"
)

// Build-time variables injected via ldflags.
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showRoutes := flag.Bool("routes", false, "Print Markdown route documentation and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "oBlog - a small blog\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_SESSION_SECRET   Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_DB_PATH          SQLite database path (default: ./data/oblog.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_DB_DRIVER        sqlite (pure Go) or sqlite3 (cgo) (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_REDIS_URL        Redis URL for the category cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_METRICS_ADDR     Separate listener for /metrics (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_DO_SEED          Load fixture data on start (default: false)\n")
	}

	flag.Parse()

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}

	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if *showRoutes {
		doc, err := routesDoc(info)
		if err != nil {
			slog.Error("generating route docs", "error", err)
			os.Exit(1)
		}
		_, _ = fmt.Println(doc)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.SlogLevel(), !cfg.IsDevelopment())
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	dbConfig := store.DefaultDBConfig()
	dbConfig.Driver = cfg.DBDriver
	logger.Info("initializing database", "path", cfg.DBPath, "driver", cfg.DBDriver)
	db, err := store.NewDBWithConfig(cfg.DBPath, dbConfig)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		logger.Info("fixture data loaded")
	}

	categoryCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
	}, logger)
	defer func() { _ = categoryCache.Close() }()

	repos := repository.NewSQL(db)
	repos.Categories = cache.NewCategoryRepository(repos.Categories, categoryCache, cfg.CacheTTLDuration(), logger)

	sessionManager := session.New(db, cfg.IsDevelopment())

	loginProtection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{Logger: logger})
	go loginProtection.Run(ctx, 5*time.Minute)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	routerConfig, err := newRouterConfig(repos, sessionManager, logger, cfg.IsDevelopment(), service.ContentOptions{
		HomeArticleLimit: cfg.HomeArticleLimit,
		SearchLimit:      cfg.SearchLimit,
	})
	if err != nil {
		return err
	}
	routerConfig.LoginProtection = loginProtection
	routerConfig.DB = db
	routerConfig.CSRFKey = []byte(cfg.SessionSecret)
	routerConfig.ServerAddr = cfg.ServerAddr()
	routerConfig.Version = info.Version
	routerConfig.SiteURL = cfg.SiteURL
	routerConfig.DisallowCrawlers = cfg.DisallowCrawlers
	if cfg.MetricsAddr == "" {
		routerConfig.MetricsHandler = metricsHandler
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           handler.NewRouter(routerConfig),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	servers := []*http.Server{srv}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	errCh := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *http.Server) {
			logger.Info("starting server", "addr", s.Addr, "env", cfg.Env, "version", info.Version)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server %s: %w", s.Addr, err)
			}
		}(s)
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// newRouterConfig builds the services and renderer shared by the server and
// the route documentation.
func newRouterConfig(repos repository.Repositories, sm *scs.SessionManager, logger *slog.Logger, isDev bool, opts service.ContentOptions) (handler.RouterConfig, error) {
	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return handler.RouterConfig{}, fmt.Errorf("getting templates fs: %w", err)
	}
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return handler.RouterConfig{}, fmt.Errorf("getting static fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sm,
		Logger:         logger,
		IsDev:          isDev,
	})
	if err != nil {
		return handler.RouterConfig{}, fmt.Errorf("initializing renderer: %w", err)
	}

	return handler.RouterConfig{
		Content:        service.NewContentService(repos, logger, opts),
		Auth:           service.NewAuthService(repos.Users, logger),
		Categories:     repos.Categories,
		Renderer:       renderer,
		SessionManager: sm,
		Logger:         logger,
		StaticFS:       static,
		IsDev:          isDev,
	}, nil
}

// routesDoc renders the route table of a router built over an empty
// in-memory store.
func routesDoc(info version.Info) (string, error) {
	logger := slog.Default()
	cfg, err := newRouterConfig(repository.NewMemory().Repositories(), scs.New(), logger, true, service.ContentOptions{})
	if err != nil {
		return "", err
	}
	cfg.Version = info.Version
	cfg.CSRFKey = make([]byte, config.MinSessionSecretLength)
	cfg.MetricsHandler = promhttp.Handler()

	return docgen.MarkdownRoutesDoc(handler.NewRouter(cfg), docgen.MarkdownOpts{
		ProjectPath: "github.com/olegiv/oblog",
		Intro:       "oBlog routes.",
	}), nil
}
