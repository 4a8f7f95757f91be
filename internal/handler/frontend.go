// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTML handlers of the blog.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog/internal/metrics"
	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/repository"
	"github.com/olegiv/oblog/internal/service"
	"github.com/olegiv/oblog/internal/util"
)

// articleView is the data behind the article page: the service bundle plus
// the comment form state.
type articleView struct {
	*service.ArticlePage
	Draft string
}

// FrontendHandler serves the public blog pages and comment submission.
type FrontendHandler struct {
	pages
	content *service.ContentService
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(content *service.ContentService, renderer *render.Renderer, categories repository.CategoryRepository, logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		pages: pages{
			renderer:   renderer,
			categories: categories,
			logger:     logger,
		},
		content: content,
	}
}

// Home handles GET /.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.HomePageData(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, tmplHome, render.TemplateData{
		Title:      "Home",
		Data:       page,
		Categories: page.Categories,
	})
}

// Category handles GET /category/{categoryName}.
func (h *FrontendHandler) Category(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, ParamCategoryName)

	page, err := h.content.ArticlesByCategory(r.Context(), name)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, tmplCategory, render.TemplateData{
		Title:      name,
		Data:       page,
		Categories: page.Categories,
	})
}

// Article handles GET /article/{slug}.
func (h *FrontendHandler) Article(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, ParamSlug)
	if !util.IsASCIISlug(slug) {
		h.renderError(w, r, http.StatusNotFound, msgArticleMissing)
		return
	}

	page, err := h.content.ArticleData(r.Context(), slug)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.renderArticle(w, r, http.StatusOK, page, "", "")
}

// Search handles GET /search?q=.
func (h *FrontendHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get(ParamQuery)

	page, err := h.content.SearchArticles(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, tmplSearch, render.TemplateData{
		Title:      "Search",
		Data:       page,
		Categories: page.Categories,
		Query:      query,
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, msgPageMissing)
}

// CreateComment handles POST /comment/{slug}/new. The route sits behind
// authentication, so an anonymous request never gets here.
func (h *FrontendHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, ParamSlug)
	if !util.IsASCIISlug(slug) {
		h.renderError(w, r, http.StatusNotFound, msgArticleMissing)
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	draft := model.NewComment(render.StripTags(r.PostFormValue("content")))

	if err := draft.Validate(); err != nil {
		h.rejectInvalidDraft(w, r, slug)
		return
	}

	article, err := h.content.CreateComment(r.Context(), slug, user, draft)
	if err != nil {
		metrics.Comments.WithLabelValues(metrics.CommentRejected).Inc()
		h.handleServiceError(w, r, err)
		return
	}

	if article == nil {
		// Saving failed and was logged by the service; offer the form again.
		metrics.Comments.WithLabelValues(metrics.CommentFailed).Inc()
		page, err := h.content.ArticleData(r.Context(), slug)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		h.renderArticle(w, r, http.StatusOK, page, draft.Content, msgCommentFailed)
		return
	}

	metrics.Comments.WithLabelValues(metrics.CommentCreated).Inc()
	flashSuccess(w, r, h.renderer, ArticlePath(article.Slug)+"#comments", msgCommentAdded)
}

// rejectInvalidDraft re-renders the article with a validation error. An
// unknown or untitled article still wins over the form error.
func (h *FrontendHandler) rejectInvalidDraft(w http.ResponseWriter, r *http.Request, slug string) {
	page, err := h.content.ArticleData(r.Context(), slug)
	if err != nil {
		metrics.Comments.WithLabelValues(metrics.CommentRejected).Inc()
		h.handleServiceError(w, r, err)
		return
	}
	if !page.Article.HasTitle() {
		metrics.Comments.WithLabelValues(metrics.CommentRejected).Inc()
		h.handleServiceError(w, r, &service.ContentError{Kind: service.ErrInvalidState, Message: "Article title is missing."})
		return
	}

	metrics.Comments.WithLabelValues(metrics.CommentInvalid).Inc()
	h.renderArticle(w, r, http.StatusUnprocessableEntity, page, "", msgCommentEmpty)
}

func (h *FrontendHandler) renderArticle(w http.ResponseWriter, r *http.Request, status int, page *service.ArticlePage, draft, formError string) {
	h.render(w, r, status, tmplArticle, render.TemplateData{
		Title:      page.Article.Title,
		Data:       articleView{ArticlePage: page, Draft: draft},
		Categories: page.Categories,
		Error:      formError,
	})
}
