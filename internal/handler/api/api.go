// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api serves the blog's content as JSON under /api/v1.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/olegiv/oblog/internal/metrics"
	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/service"
	"github.com/olegiv/oblog/internal/util"
)

// Route parameter names.
const (
	paramSlug  = "slug"
	paramName  = "name"
	paramQuery = "q"
)

const msgArticleMissing = "The article does not exist"

// Handler serves the JSON API.
type Handler struct {
	content *service.ContentService
	logger  *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(content *service.ContentService, logger *slog.Logger) *Handler {
	return &Handler{content: content, logger: logger}
}

// Routes returns the API router. Comment creation requires a session.
func (h *Handler) Routes(sm *scs.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/home", h.Home)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{name}", h.Category)
	r.Get("/search", h.Search)
	r.Route("/articles/{slug}", func(r chi.Router) {
		r.Get("/", h.Article)
		r.With(middleware.AuthAPI(sm)).Post("/comments", h.CreateComment)
	})

	return r
}

// Home handles GET /home.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.HomePageData(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, NewHomeResponse(page))
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.content.Categories(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, &CategoriesResponse{Categories: NewCategoryList(categories)})
}

// Category handles GET /categories/{name}.
func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.ArticlesByCategory(r.Context(), chi.URLParam(r, paramName))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, NewCategoryResponse(page))
}

// Article handles GET /articles/{slug}.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, paramSlug)
	if !util.IsASCIISlug(slug) {
		h.respond(w, r, ErrNotFound(msgArticleMissing))
		return
	}

	page, err := h.content.ArticleData(r.Context(), slug)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, NewArticlePageResponse(page))
}

// Search handles GET /search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.SearchArticles(r.Context(), r.URL.Query().Get(paramQuery))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, NewSearchResponse(page))
}

// CreateComment handles POST /articles/{slug}/comments.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, paramSlug)
	if !util.IsASCIISlug(slug) {
		h.respond(w, r, ErrNotFound(msgArticleMissing))
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		h.respond(w, r, ErrUnauthorized)
		return
	}

	data := &CommentRequest{}
	if err := render.Bind(r, data); err != nil {
		metrics.Comments.WithLabelValues(metrics.CommentInvalid).Inc()
		h.respond(w, r, ErrInvalidRequest(err))
		return
	}

	draft := model.NewComment(data.Content)
	article, err := h.content.CreateComment(r.Context(), slug, user, draft)
	if err != nil {
		metrics.Comments.WithLabelValues(metrics.CommentRejected).Inc()
		h.serviceError(w, r, err)
		return
	}
	if article == nil {
		metrics.Comments.WithLabelValues(metrics.CommentFailed).Inc()
		h.respond(w, r, ErrCommentNotSaved)
		return
	}

	metrics.Comments.WithLabelValues(metrics.CommentCreated).Inc()
	render.Status(r, http.StatusCreated)
	h.respond(w, r, &CreatedCommentResponse{Comment: NewCommentResponse(draft), Slug: article.Slug})
}

// serviceError maps content service errors to 404 and anything else to 500.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *service.ContentError
	if errors.As(err, &ce) {
		h.respond(w, r, ErrNotFound(ce.Message))
		return
	}
	h.logger.ErrorContext(r.Context(), "content service failed", "error", err)
	h.respond(w, r, ErrInternal(err))
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render response", "error", err)
	}
}
