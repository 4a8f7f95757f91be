// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for CSRF protection.
// filippo.io/csrf/gorilla checks Fetch metadata headers rather than tokens,
// so forms need no hidden field.
type CSRFConfig struct {
	// AuthKey is the 32-byte session secret.
	AuthKey []byte

	// ErrorHandler is called when CSRF validation fails.
	ErrorHandler http.Handler

	// TrustedOrigins are host:port values allowed to post cross-origin.
	TrustedOrigins []string

	Logger *slog.Logger
}

// DefaultCSRFConfig returns a CSRFConfig for the given listen address.
// In development the local listen address is trusted as an origin.
func DefaultCSRFConfig(authKey []byte, isDev bool, serverAddr string) CSRFConfig {
	cfg := CSRFConfig{
		AuthKey: authKey,
		Logger:  slog.Default(),
	}

	if isDev {
		// The csrf library expects host-only values, not full URLs.
		cfg.TrustedOrigins = []string{"localhost:8080", "127.0.0.1:8080"}
		if serverAddr != "" && serverAddr != "localhost:8080" && serverAddr != "127.0.0.1:8080" {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, serverAddr)
		}
	}

	return cfg
}

// CSRF returns a middleware that rejects cross-site state-changing requests.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	var opts []csrf.Option

	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	} else {
		opts = append(opts, csrf.ErrorHandler(csrfErrorHandler(cfg.Logger)))
	}

	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfErrorHandler(logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reasonStr := "unknown"
		if reason := csrf.FailureReason(r); reason != nil {
			reasonStr = reason.Error()
		}
		logger.WarnContext(r.Context(), "CSRF validation failed",
			"reason", reasonStr,
			"method", r.Method,
			"origin", r.Header.Get("Origin"),
			"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
		)
		http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
	})
}
