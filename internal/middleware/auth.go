// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// request protection and request context handling.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/render"

	"github.com/olegiv/oblog/internal/logging"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the authenticated *model.User.
const ContextKeyUser ContextKey = "user"

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// UserLoader resolves the user stored in a session.
type UserLoader interface {
	User(ctx context.Context, id int64) (*model.User, error)
}

// Auth creates middleware that requires authentication.
// Unauthenticated GET requests remember their URL so login can return there.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetInt64(r.Context(), session.KeyUserID) == 0 {
				if r.Method == http.MethodGet {
					sm.Put(r.Context(), session.KeyReturnTo, r.URL.RequestURI())
				} else if ref := r.Referer(); ref != "" {
					sm.Put(r.Context(), session.KeyReturnTo, ref)
				}
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthAPI is Auth for JSON endpoints: it answers 401 instead of redirecting.
func AuthAPI(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetInt64(r.Context(), session.KeyUserID) == 0 {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"status": "Unauthorized.", "error": "authentication required"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser creates middleware that loads the current user into the request context.
// This should be used after Auth middleware.
func LoadUser(sm *scs.SessionManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), session.KeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.User(r.Context(), userID)
			if err != nil {
				// Stale session: the user is gone.
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// OptionalLoadUser creates middleware that optionally loads the current user into context.
// Unlike LoadUser, this does NOT redirect to login if the user is not found.
func OptionalLoadUser(sm *scs.SessionManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), session.KeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.User(r.Context(), userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

func withUser(ctx context.Context, user *model.User) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUser, user)
	return logging.WithUserID(ctx, user.ID)
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, _ := r.Context().Value(ContextKeyUser).(*model.User)
	return user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// RequestPath creates middleware that stores the request path in the context.
// This is used by the logging handler to include the URL in log records.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(logging.WithPath(r.Context(), r.URL.Path)))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	return logging.Path(ctx)
}
