// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "OBLOG_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/oblog.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/oblog.db")
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.HomeArticleLimit != 0 {
		t.Errorf("HomeArticleLimit = %d, want 0", cfg.HomeArticleLimit)
	}
	if cfg.SearchLimit != 10 {
		t.Errorf("SearchLimit = %d, want 10", cfg.SearchLimit)
	}
	if cfg.CachePrefix != "oblog:" {
		t.Errorf("CachePrefix = %q", cfg.CachePrefix)
	}
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("CacheTTLDuration = %v", cfg.CacheTTLDuration())
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache should be false by default")
	}
	if cfg.DoSeed {
		t.Error("DoSeed should be false by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "OBLOG_SESSION_SECRET", customSecret)
	setEnv(t, "OBLOG_DB_PATH", "/custom/path.db")
	setEnv(t, "OBLOG_DB_DRIVER", "sqlite3")
	setEnv(t, "OBLOG_SERVER_HOST", "0.0.0.0")
	setEnv(t, "OBLOG_SERVER_PORT", "3000")
	setEnv(t, "OBLOG_ENV", "production")
	setEnv(t, "OBLOG_LOG_LEVEL", "debug")
	setEnv(t, "OBLOG_HOME_ARTICLE_LIMIT", "5")
	setEnv(t, "OBLOG_SEARCH_LIMIT", "20")
	setEnv(t, "OBLOG_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "OBLOG_DO_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.DBDriver != "sqlite3" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment should be false in production")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v", cfg.SlogLevel())
	}
	if cfg.HomeArticleLimit != 5 || cfg.SearchLimit != 20 {
		t.Errorf("limits = %d/%d", cfg.HomeArticleLimit, cfg.SearchLimit)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache should be true")
	}
	if !cfg.DoSeed {
		t.Error("DoSeed should be true")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when OBLOG_SESSION_SECRET is not set")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "OBLOG_SESSION_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoad_RejectsWeakSecret(t *testing.T) {
	for _, weak := range knownWeakSecrets {
		os.Clearenv()
		setEnv(t, "OBLOG_SESSION_SECRET", weak)

		if _, err := Load(); err == nil {
			t.Errorf("Load() should reject known secret %q", weak)
		}
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "OBLOG_DB_DRIVER", "postgres"},
		{"zero search limit", "OBLOG_SEARCH_LIMIT", "0"},
		{"negative home limit", "OBLOG_HOME_ARTICLE_LIMIT", "-1"},
		{"zero cache ttl", "OBLOG_CACHE_TTL", "0"},
		{"non-numeric port", "OBLOG_SERVER_PORT", "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "OBLOG_SESSION_SECRET", testSecret)
			setEnv(t, tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := (Config{LogLevel: tt.level}).SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaa1111111111111111", false},
		{"aaaaaaaaAAAAAAAA1111111111111111", true},
		{testSecret, true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
