// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/repository"
	"github.com/olegiv/oblog/internal/service"
)

// errorView is the data behind the error page.
type errorView struct {
	Status  int
	Message string
}

// pages renders HTML responses shared by the frontend and auth handlers.
type pages struct {
	renderer   *render.Renderer
	categories repository.CategoryRepository
	logger     *slog.Logger
}

// sidebar loads the category list for the layout. Failures are logged and
// yield an empty sidebar.
func (p *pages) sidebar(r *http.Request) []*model.Category {
	if p.categories == nil {
		return []*model.Category{}
	}
	categories, err := p.categories.FindAll(r.Context())
	if err != nil {
		p.logger.WarnContext(r.Context(), "failed to load categories", "error", err)
		return []*model.Category{}
	}
	return categories
}

// render writes the named page; a template failure becomes a plain 500.
func (p *pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if data.User == nil {
		data.User = middleware.GetUser(r)
	}
	if data.Categories == nil {
		data.Categories = p.sidebar(r)
	}
	if err := p.renderer.RenderStatus(w, r, status, name, data); err != nil {
		logAndInternalError(w, p.logger.With("template", name), r, "failed to render template", err)
	}
}

// renderError renders the error page with the given status and message.
func (p *pages) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	p.render(w, r, status, tmplError, render.TemplateData{
		Title: http.StatusText(status),
		Data:  errorView{Status: status, Message: message},
	})
}

// handleServiceError maps content service errors: NotFound and InvalidState
// become 404 with the service message, anything else 500.
func (p *pages) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *service.ContentError
	if errors.As(err, &ce) {
		p.renderError(w, r, http.StatusNotFound, ce.Message)
		return
	}
	p.logger.ErrorContext(r.Context(), "content service failed", "error", err)
	p.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, logMsg string, err error) {
	logger.ErrorContext(r.Context(), logMsg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// localRedirect returns target reduced to a same-host path, or fallback when
// target points elsewhere.
func localRedirect(target, host, fallback string) string {
	if target == "" {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || (u.Host != "" && u.Host != host) || (u.Scheme != "" && u.Host == "") {
		return fallback
	}
	if u.Path == "" || u.Path[0] != '/' || (len(u.Path) > 1 && (u.Path[1] == '/' || u.Path[1] == '\\')) {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
