// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Config selects and tunes a cache backend.
type Config struct {
	// RedisURL selects Redis when set, e.g. redis://localhost:6379/0.
	RedisURL string
	// Prefix is the Redis key prefix.
	Prefix string
	// DefaultTTL is the TTL used when Set is called with zero.
	DefaultTTL time.Duration
	// CleanupInterval is how often the memory backend drops expired entries.
	CleanupInterval time.Duration
}

// New returns a Redis cache when RedisURL is set and reachable, and a
// memory cache otherwise. A Redis failure is logged, not returned.
func New(cfg Config, logger *slog.Logger) Cache {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}

	if cfg.RedisURL != "" {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		opts.DefaultTTL = cfg.DefaultTTL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}

		rc, err := NewRedisCache(opts)
		if err == nil {
			logger.Info("using redis cache", "prefix", opts.Prefix)
			return rc
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	logger.Info("using memory cache", "ttl", cfg.DefaultTTL)
	return NewMemoryCache(cfg.DefaultTTL, cfg.CleanupInterval)
}
