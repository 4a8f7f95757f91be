// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot     = "/"
	RouteCategory = "/category/{categoryName}"
	RouteArticle  = "/article/{slug}"
	RouteSearch   = "/search"
	RouteComment  = "/comment/{slug}/new"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
	RouteHealth   = "/health"
	RouteLive     = "/health/live"
	RouteStatic   = "/static/*"
	RouteMetrics  = "/metrics"
	RouteSitemap  = "/sitemap.xml"
	RouteRobots   = "/robots.txt"
)

// Route parameter names.
const (
	ParamSlug         = "slug"
	ParamCategoryName = "categoryName"
	ParamQuery        = "q"
)

// Template names.
const (
	tmplHome     = "main/main"
	tmplSearch   = "main/search"
	tmplCategory = "category/show"
	tmplArticle  = "article/show"
	tmplLogin    = "security/login"
	tmplError    = "error/error"
)

// User-facing messages.
const (
	msgCommentEmpty   = "Please write a comment before posting."
	msgCommentFailed  = "Your comment could not be saved. Please try again."
	msgCommentAdded   = "Your comment has been posted."
	msgLoginRequired  = "Email and password are required."
	msgBadCredentials = "Invalid credentials."
	msgLoggedOut      = "You have been logged out."
	msgArticleMissing = "The article does not exist"
	msgPageMissing    = "Page not found."
)

// ArticlePath returns the URL of the article with the given slug.
func ArticlePath(slug string) string {
	return "/article/" + slug
}
