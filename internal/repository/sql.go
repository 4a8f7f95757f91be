// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/store"
)

// NewSQL returns repositories backed by the SQLite database.
func NewSQL(db *sql.DB) Repositories {
	base := &sqlBase{db: db, queries: store.New(db)}
	return Repositories{
		Articles:   &SQLArticles{base},
		Categories: &SQLCategories{base},
		Comments:   &SQLComments{base},
		Users:      &SQLUsers{base},
	}
}

type sqlBase struct {
	db      *sql.DB
	queries *store.Queries
}

// SQLArticles implements ArticleRepository.
type SQLArticles struct{ *sqlBase }

func (r *SQLArticles) FindNewest(ctx context.Context, limit int) ([]*model.Article, error) {
	rows, err := r.queries.ListArticles(ctx, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return newGraph(r.queries).articles(ctx, rows)
}

func (r *SQLArticles) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	row, err := r.queries.GetArticleBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting article %q: %w", slug, err)
	}
	return newGraph(r.queries).article(ctx, row)
}

func (r *SQLArticles) FindByCategory(ctx context.Context, c *model.Category) ([]*model.Article, error) {
	rows, err := r.queries.ListArticlesByCategory(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing articles of category %d: %w", c.ID, err)
	}
	g := newGraph(r.queries)
	g.seedCategory(c)
	return g.articles(ctx, rows)
}

func (r *SQLArticles) Search(ctx context.Context, query string, limit int) ([]*model.Article, error) {
	rows, err := r.queries.SearchArticles(ctx, store.SearchArticlesParams{
		Query: query,
		Limit: sqlLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("searching articles: %w", err)
	}
	return newGraph(r.queries).articles(ctx, rows)
}

// SQLCategories implements CategoryRepository.
type SQLCategories struct{ *sqlBase }

func (r *SQLCategories) FindAll(ctx context.Context) ([]*model.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	result := make([]*model.Category, 0, len(rows))
	for _, row := range rows {
		result = append(result, categoryFromRow(row))
	}
	return result, nil
}

func (r *SQLCategories) FindByName(ctx context.Context, name string) (*model.Category, error) {
	row, err := r.queries.GetCategoryByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting category %q: %w", name, err)
	}
	return categoryFromRow(row), nil
}

// SQLComments implements CommentRepository.
type SQLComments struct{ *sqlBase }

func (r *SQLComments) FindByArticle(ctx context.Context, a *model.Article) ([]*model.Comment, error) {
	rows, err := r.queries.ListCommentsByArticle(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("listing comments of article %d: %w", a.ID, err)
	}
	g := newGraph(r.queries)
	g.seedUser(a.CreatedBy())
	return g.comments(ctx, a, rows)
}

func (r *SQLComments) Add(ctx context.Context, c *model.Comment) error {
	articleID, userID, err := commentRefs(c)
	if err != nil {
		return err
	}
	c.EnsureCreatedAt(time.Now())

	var id int64
	err = store.RunInTx(ctx, r.db, func(q *store.Queries) error {
		row, err := q.CreateComment(ctx, store.CreateCommentParams{
			Content:     c.Content,
			CreatedAt:   c.CreatedAt,
			ArticleID:   articleID,
			CommentedBy: userID,
		})
		if err != nil {
			return fmt.Errorf("creating comment: %w", err)
		}
		id = row.ID
		return nil
	})
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// SQLUsers implements UserRepository.
type SQLUsers struct{ *sqlBase }

func (r *SQLUsers) FindByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return userFromRow(row)
}

func (r *SQLUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %q: %w", email, err)
	}
	return userFromRow(row)
}

func (r *SQLUsers) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if err := r.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
		PasswordHash: passwordHash,
		ID:           id,
	}); err != nil {
		return fmt.Errorf("updating password of user %d: %w", id, err)
	}
	return nil
}

func (r *SQLUsers) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	if err := r.queries.UpdateUserLastLogin(ctx, store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: at, Valid: true},
		ID:          id,
	}); err != nil {
		return fmt.Errorf("updating last login of user %d: %w", id, err)
	}
	return nil
}

// sqlLimit maps "no limit" to SQLite's LIMIT -1.
func sqlLimit(limit int) int64 {
	if limit <= 0 {
		return -1
	}
	return int64(limit)
}
