// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/oblog/internal/model"
	oblogrender "github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/service"
)

// UserPayload is the public view of a user.
type UserPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
}

// NewUserPayload returns nil for a nil user.
func NewUserPayload(u *model.User) *UserPayload {
	if u == nil {
		return nil
	}
	return &UserPayload{ID: u.ID, FirstName: u.FirstName}
}

// CategoryPayload is the public view of a category.
type CategoryPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategoryPayload returns nil for a nil category.
func NewCategoryPayload(c *model.Category) *CategoryPayload {
	if c == nil {
		return nil
	}
	return &CategoryPayload{ID: c.ID, Name: c.Name}
}

// NewCategoryList never returns nil, so empty lists encode as [].
func NewCategoryList(categories []*model.Category) []*CategoryPayload {
	list := make([]*CategoryPayload, 0, len(categories))
	for _, c := range categories {
		list = append(list, NewCategoryPayload(c))
	}
	return list
}

// ArticleResponse is the response payload for an article.
type ArticleResponse struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Slug      string           `json:"slug"`
	Content   string           `json:"content"`
	Image     string           `json:"image,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	Category  *CategoryPayload `json:"category,omitempty"`
	Author    *UserPayload     `json:"createdBy,omitempty"`
}

// NewArticleResponse builds the payload for a.
func NewArticleResponse(a *model.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      a.Slug,
		Content:   a.Content,
		Image:     a.Image,
		CreatedAt: a.CreatedAt,
		Category:  NewCategoryPayload(a.Category()),
		Author:    NewUserPayload(a.CreatedBy()),
	}
}

// NewArticleList never returns nil, so empty lists encode as [].
func NewArticleList(articles []*model.Article) []*ArticleResponse {
	list := make([]*ArticleResponse, 0, len(articles))
	for _, a := range articles {
		list = append(list, NewArticleResponse(a))
	}
	return list
}

// CommentResponse is the response payload for a comment.
type CommentResponse struct {
	ID          int64        `json:"id"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"createdAt"`
	CommentedBy *UserPayload `json:"commentedBy,omitempty"`
}

// NewCommentResponse builds the payload for c.
func NewCommentResponse(c *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:          c.ID,
		Content:     c.Content,
		CreatedAt:   c.CreatedAt,
		CommentedBy: NewUserPayload(c.CommentedBy()),
	}
}

// NewCommentList never returns nil, so empty lists encode as [].
func NewCommentList(comments []*model.Comment) []*CommentResponse {
	list := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		list = append(list, NewCommentResponse(c))
	}
	return list
}

// ListingResponse carries the home, category and search bundles.
type ListingResponse struct {
	Articles   []*ArticleResponse `json:"articles"`
	Categories []*CategoryPayload `json:"categories"`
	Query      *string            `json:"query,omitempty"`
}

// Render implements render.Renderer.
func (l *ListingResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

// NewHomeResponse converts the home page bundle.
func NewHomeResponse(p *service.HomePage) *ListingResponse {
	return &ListingResponse{Articles: NewArticleList(p.Articles), Categories: NewCategoryList(p.Categories)}
}

// NewCategoryResponse converts the category page bundle.
func NewCategoryResponse(p *service.CategoryPage) *ListingResponse {
	return &ListingResponse{Articles: NewArticleList(p.Articles), Categories: NewCategoryList(p.Categories)}
}

// NewSearchResponse converts the search bundle.
func NewSearchResponse(p *service.SearchPage) *ListingResponse {
	q := p.Query
	return &ListingResponse{Articles: NewArticleList(p.Articles), Categories: NewCategoryList(p.Categories), Query: &q}
}

// ArticlePageResponse is the article bundle.
type ArticlePageResponse struct {
	Article    *ArticleResponse   `json:"article"`
	Categories []*CategoryPayload `json:"categories"`
	Comments   []*CommentResponse `json:"comments"`
	Slug       string             `json:"slug"`
}

// Render implements render.Renderer.
func (a *ArticlePageResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

// NewArticlePageResponse converts the article bundle.
func NewArticlePageResponse(p *service.ArticlePage) *ArticlePageResponse {
	return &ArticlePageResponse{
		Article:    NewArticleResponse(p.Article),
		Categories: NewCategoryList(p.Categories),
		Comments:   NewCommentList(p.Comments),
		Slug:       p.Slug,
	}
}

// CategoriesResponse lists every category.
type CategoriesResponse struct {
	Categories []*CategoryPayload `json:"categories"`
}

// Render implements render.Renderer.
func (c *CategoriesResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

// CreatedCommentResponse is returned after a comment is stored.
type CreatedCommentResponse struct {
	Comment *CommentResponse `json:"comment"`
	Slug    string           `json:"slug"`
}

// Render implements render.Renderer.
func (c *CreatedCommentResponse) Render(w http.ResponseWriter, r *http.Request) error { return nil }

// CommentRequest is the request payload for a new comment.
type CommentRequest struct {
	Content string `json:"content"`
}

var errEmptyComment = errors.New("comment content must not be empty")

// Bind strips markup and rejects empty content.
func (c *CommentRequest) Bind(r *http.Request) error {
	c.Content = oblogrender.StripTags(c.Content)
	if c.Content == "" {
		return errEmptyComment
	}
	return nil
}
