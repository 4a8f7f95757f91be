// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the blog's settings from OBLOG_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"OBLOG_DB_PATH" envDefault:"./data/oblog.db"`
	DBDriver      string `env:"OBLOG_DB_DRIVER" envDefault:"sqlite"`
	SessionSecret string `env:"OBLOG_SESSION_SECRET,required"`
	ServerHost    string `env:"OBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"OBLOG_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"OBLOG_ENV" envDefault:"development"`
	LogLevel      string `env:"OBLOG_LOG_LEVEL" envDefault:"info"`

	// SiteURL is the public base URL used in sitemap.xml; empty uses the request host.
	SiteURL string `env:"OBLOG_SITE_URL"`
	// DisallowCrawlers makes robots.txt block every crawler (staging sites).
	DisallowCrawlers bool `env:"OBLOG_DISALLOW_CRAWLERS" envDefault:"false"`

	// Listing sizes
	HomeArticleLimit int `env:"OBLOG_HOME_ARTICLE_LIMIT" envDefault:"0"` // 0 lists every article
	SearchLimit      int `env:"OBLOG_SEARCH_LIMIT" envDefault:"10"`

	// Cache configuration
	RedisURL    string `env:"OBLOG_REDIS_URL"`                       // Optional Redis URL for the category cache
	CachePrefix string `env:"OBLOG_CACHE_PREFIX" envDefault:"oblog:"` // Redis key prefix
	CacheTTL    int    `env:"OBLOG_CACHE_TTL" envDefault:"300"`       // Cache TTL in seconds

	// MetricsAddr serves /metrics on a separate listener when set.
	MetricsAddr string `env:"OBLOG_METRICS_ADDR"`

	DoSeed bool `env:"OBLOG_DO_SEED" envDefault:"false"` // Load fixture data on start
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("OBLOG_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("OBLOG_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("OBLOG_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	switch cfg.DBDriver {
	case "sqlite", "sqlite3":
	default:
		return nil, fmt.Errorf("OBLOG_DB_DRIVER must be \"sqlite\" or \"sqlite3\", got %q", cfg.DBDriver)
	}

	if cfg.SearchLimit <= 0 {
		return nil, fmt.Errorf("OBLOG_SEARCH_LIMIT must be positive, got %d", cfg.SearchLimit)
	}
	if cfg.HomeArticleLimit < 0 {
		return nil, fmt.Errorf("OBLOG_HOME_ARTICLE_LIMIT must not be negative, got %d", cfg.HomeArticleLimit)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("OBLOG_CACHE_TTL must be positive, got %d", cfg.CacheTTL)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
