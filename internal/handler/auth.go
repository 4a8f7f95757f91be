// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oblog/internal/metrics"
	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/repository"
	"github.com/olegiv/oblog/internal/service"
	"github.com/olegiv/oblog/internal/session"
)

// loginView is the data behind the login page.
type loginView struct {
	LastUsername string
}

// AuthHandler handles authentication routes.
type AuthHandler struct {
	pages
	auth            *service.AuthService
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil to disable lockouts.
func NewAuthHandler(auth *service.AuthService, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection, categories repository.CategoryRepository, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		pages: pages{
			renderer:   renderer,
			categories: categories,
			logger:     logger,
		},
		auth:            auth,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Signed-in users go to the home page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetInt64(r.Context(), session.KeyUserID) > 0 {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, tmplLogin, render.TemplateData{
		Title: "Log in",
		Data: loginView{
			LastUsername: h.sessionManager.PopString(r.Context(), session.KeyLastUsername),
		},
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, RouteLogin, "Invalid form data")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if email == "" || password == "" {
		h.sessionManager.Put(r.Context(), session.KeyLastUsername, email)
		flashError(w, r, h.renderer, RouteLogin, msgLoginRequired)
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			metrics.LoginAttempts.WithLabelValues("locked").Inc()
			h.logger.WarnContext(r.Context(), "login attempt on locked account", "email", email)
			h.sessionManager.Put(r.Context(), session.KeyLastUsername, email)
			flashError(w, r, h.renderer, RouteLogin,
				fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.auth.Authenticate(r.Context(), email, password)
	if err != nil {
		h.loginFailed(w, r, email, err)
		return
	}

	// Renew the token to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, h.logger, r, "failed to renew session token", err)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	returnTo := h.sessionManager.PopString(r.Context(), session.KeyReturnTo)
	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.logger.InfoContext(r.Context(), "user logged in", "user_id", user.ID)

	http.Redirect(w, r, localRedirect(returnTo, r.Host, RouteRoot), http.StatusSeeOther)
}

// loginFailed records the failure and sends the visitor back to the form
// with the email prefilled.
func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, email string, err error) {
	h.sessionManager.Put(r.Context(), session.KeyLastUsername, email)

	if !errors.Is(err, service.ErrInvalidCredentials) {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		h.logger.ErrorContext(r.Context(), "login failed", "error", err)
		flashError(w, r, h.renderer, RouteLogin, msgBadCredentials)
		return
	}

	metrics.LoginAttempts.WithLabelValues("failure").Inc()
	h.logger.DebugContext(r.Context(), "invalid login attempt", "email", email)

	if h.loginProtection != nil {
		// Unknown emails count too, so responses do not reveal which accounts exist.
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
			flashError(w, r, h.renderer, RouteLogin,
				fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(lockDuration)))
			return
		}
		if remaining := h.loginProtection.GetRemainingAttempts(email); remaining <= 3 && remaining > 0 {
			flashError(w, r, h.renderer, RouteLogin,
				fmt.Sprintf("%s %d attempts remaining.", msgBadCredentials, remaining))
			return
		}
	}

	flashError(w, r, h.renderer, RouteLogin, msgBadCredentials)
}

// Logout handles GET and POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, h.logger, r, "failed to destroy session", err)
		return
	}
	if userID > 0 {
		h.logger.InfoContext(r.Context(), "user logged out", "user_id", userID)
	}

	flashSuccess(w, r, h.renderer, RouteRoot, msgLoggedOut)
}

// formatDuration renders a lockout duration in whole minutes or seconds.
func formatDuration(d time.Duration) string {
	if d >= time.Minute {
		minutes := int((d + time.Minute - 1) / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	seconds := int((d + time.Second - 1) / time.Second)
	if seconds == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", seconds)
}
