// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package repository loads and persists the blog's entity graph. Each call
// returns freshly built entities whose relationships are wired in both
// directions.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/olegiv/oblog/internal/model"
)

// Errors returned by repositories.
var (
	ErrNotFound = errors.New("not found")
	ErrUnsaved  = errors.New("related entity is not persisted")
)

// ArticleRepository reads articles.
type ArticleRepository interface {
	// FindNewest returns articles newest first. A limit <= 0 returns all.
	FindNewest(ctx context.Context, limit int) ([]*model.Article, error)
	// FindBySlug returns the article with the given slug or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*model.Article, error)
	// FindByCategory returns the articles filed under c, attached to c.
	FindByCategory(ctx context.Context, c *model.Category) ([]*model.Article, error)
	// Search returns articles whose title or content contains query,
	// newest first, at most limit of them.
	Search(ctx context.Context, query string, limit int) ([]*model.Article, error)
}

// CategoryRepository reads categories.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*model.Category, error)
	// FindByName returns the category with exactly the given name or ErrNotFound.
	FindByName(ctx context.Context, name string) (*model.Category, error)
}

// CommentRepository reads and writes comments.
type CommentRepository interface {
	// FindByArticle returns a's comments in insertion order, attached to a.
	FindByArticle(ctx context.Context, a *model.Article) ([]*model.Comment, error)
	// Add persists c atomically and assigns its ID. The creation time is
	// stamped if unset.
	Add(ctx context.Context, c *model.Comment) error
}

// UserRepository reads and updates users.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// Repositories bundles the repositories a service needs.
type Repositories struct {
	Articles   ArticleRepository
	Categories CategoryRepository
	Comments   CommentRepository
	Users      UserRepository
}

// commentRefs returns the IDs a comment row needs, or ErrUnsaved.
func commentRefs(c *model.Comment) (articleID, userID int64, err error) {
	if c.Article() == nil || c.Article().ID == 0 {
		return 0, 0, errors.Join(ErrUnsaved, errors.New("comment has no saved article"))
	}
	if c.CommentedBy() == nil || c.CommentedBy().ID == 0 {
		return 0, 0, errors.Join(ErrUnsaved, errors.New("comment has no saved author"))
	}
	return c.Article().ID, c.CommentedBy().ID, nil
}
