// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the blog's use cases: assembling page data for
// readers, accepting comments and authenticating users.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/repository"
)

// DefaultSearchLimit caps search results when no limit is configured.
const DefaultSearchLimit = 10

// Error kinds reported by ContentService. Use errors.Is to test for them.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

// ContentError carries a reader-facing message for an error kind.
type ContentError struct {
	Kind    error
	Message string
}

func (e *ContentError) Error() string { return e.Message }

func (e *ContentError) Unwrap() error { return e.Kind }

func notFound(msg string) error { return &ContentError{Kind: ErrNotFound, Message: msg} }

func invalidState(msg string) error { return &ContentError{Kind: ErrInvalidState, Message: msg} }

// HomePage is the data behind the home page.
type HomePage struct {
	Articles   []*model.Article  `json:"articles"`
	Categories []*model.Category `json:"categories"`
}

// CategoryPage is the data behind a category listing.
type CategoryPage struct {
	Articles   []*model.Article  `json:"articles"`
	Categories []*model.Category `json:"categories"`
}

// ArticlePage is the data behind a single article.
type ArticlePage struct {
	Article    *model.Article    `json:"article"`
	Categories []*model.Category `json:"categories"`
	Comments   []*model.Comment  `json:"comments"`
	Slug       string            `json:"slug"`
}

// SearchPage is the data behind search results.
type SearchPage struct {
	Articles   []*model.Article  `json:"articles"`
	Categories []*model.Category `json:"categories"`
	Query      string            `json:"query"`
}

// SitemapData lists every crawlable article and category.
type SitemapData struct {
	Articles   []*model.Article
	Categories []*model.Category
}

// ContentOptions tunes listing sizes.
type ContentOptions struct {
	// HomeArticleLimit caps the home page listing; 0 lists every article.
	HomeArticleLimit int
	// SearchLimit caps search results; 0 uses DefaultSearchLimit.
	SearchLimit int
}

// ContentService assembles page data and accepts comments.
type ContentService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	comments   repository.CommentRepository
	logger     *slog.Logger
	opts       ContentOptions
}

// NewContentService creates a new ContentService.
func NewContentService(repos repository.Repositories, logger *slog.Logger, opts ContentOptions) *ContentService {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	if opts.HomeArticleLimit < 0 {
		opts.HomeArticleLimit = 0
	}
	return &ContentService{
		articles:   repos.Articles,
		categories: repos.Categories,
		comments:   repos.Comments,
		logger:     logger,
		opts:       opts,
	}
}

// HomePageData returns the newest articles and every category.
func (s *ContentService) HomePageData(ctx context.Context) (*HomePage, error) {
	articles, err := s.articles.FindNewest(ctx, s.opts.HomeArticleLimit)
	if err != nil {
		return nil, fmt.Errorf("loading articles: %w", err)
	}
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return &HomePage{Articles: articles, Categories: categories}, nil
}

// Categories returns every category in creation order.
func (s *ContentService) Categories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return categories, nil
}

// SitemapData returns every article, newest first, and every category.
func (s *ContentService) SitemapData(ctx context.Context) (*SitemapData, error) {
	articles, err := s.articles.FindNewest(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("loading articles: %w", err)
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &SitemapData{Articles: articles, Categories: categories}, nil
}

// ArticlesByCategory returns the articles of the category named exactly
// name. An unknown name yields ErrNotFound.
func (s *ContentService) ArticlesByCategory(ctx context.Context, name string) (*CategoryPage, error) {
	category, err := s.categories.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading category %q: %w", name, err)
	}

	articles, err := s.articles.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("loading articles: %w", err)
	}
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return &CategoryPage{Articles: articles, Categories: categories}, nil
}

// ArticleData returns the article with the given slug and its comments.
// An unknown slug yields ErrNotFound.
func (s *ContentService) ArticleData(ctx context.Context, slug string) (*ArticlePage, error) {
	article, err := s.articles.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("The article does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("loading article %q: %w", slug, err)
	}

	comments, err := s.comments.FindByArticle(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return &ArticlePage{
		Article:    article,
		Categories: categories,
		Comments:   comments,
		Slug:       slug,
	}, nil
}

// SearchArticles returns the newest articles whose title or content
// contains query.
func (s *ContentService) SearchArticles(ctx context.Context, query string) (*SearchPage, error) {
	articles, err := s.articles.Search(ctx, query, s.opts.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("searching articles: %w", err)
	}
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return &SearchPage{Articles: articles, Categories: categories, Query: query}, nil
}

// CreateComment attaches draft to the article with the given slug, credits
// it to author and persists it. It returns the article on success.
//
// An unknown slug yields ErrNotFound and an untitled article yields
// ErrInvalidState. When saving fails the error is logged and CreateComment
// returns (nil, nil) so the caller can show the form again.
func (s *ContentService) CreateComment(ctx context.Context, slug string, author *model.User, draft *model.Comment) (*model.Article, error) {
	article, err := s.articles.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Article not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading article %q: %w", slug, err)
	}

	if !article.HasTitle() {
		return nil, invalidState("Article title is missing.")
	}
	if author == nil || draft == nil {
		return nil, invalidState("Comment author is missing.")
	}

	draft.SetCommentedBy(author)
	article.AddComment(draft)

	if err := s.comments.Add(ctx, draft); err != nil {
		s.logger.ErrorContext(ctx, "error saving comment",
			"error", err,
			"slug", slug,
			"user_id", author.ID,
		)
		article.RemoveComment(draft)
		draft.SetCommentedBy(nil)
		return nil, nil
	}

	s.logger.InfoContext(ctx, "comment created",
		"comment_id", draft.ID,
		"slug", slug,
		"user_id", author.ID,
	)
	return article, nil
}
