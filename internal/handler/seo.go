// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/oblog/internal/seo"
	"github.com/olegiv/oblog/internal/service"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	content     *service.ContentService
	siteURL     string
	disallowAll bool
	logger      *slog.Logger
}

// NewSEOHandler creates a new SEOHandler. An empty siteURL is derived from
// each request.
func NewSEOHandler(content *service.ContentService, siteURL string, disallowAll bool, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{
		content:     content,
		siteURL:     siteURL,
		disallowAll: disallowAll,
		logger:      logger,
	}
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := h.content.SitemapData(r.Context())
	if err != nil {
		logAndInternalError(w, h.logger, r, "failed to load sitemap data", err)
		return
	}

	builder := seo.NewSitemapBuilder(h.baseURL(r))
	builder.AddHomepage()
	for _, a := range data.Articles {
		builder.AddArticle(a.Slug, a.CreatedAt)
	}
	for _, c := range data.Categories {
		builder.AddCategory(c.Name)
	}

	out, err := builder.Build()
	if err != nil {
		logAndInternalError(w, h.logger, r, "failed to build sitemap", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.baseURL(r),
		DisallowAll: h.disallowAll,
	})))
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
