// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/store"
)

// rowSource resolves the rows an article or comment points at.
type rowSource interface {
	GetUserByID(ctx context.Context, id int64) (store.User, error)
	GetCategoryByID(ctx context.Context, id int64) (store.Category, error)
}

// graph builds entities for a single call, sharing one instance per ID so
// that related entities point at each other.
type graph struct {
	src        rowSource
	users      map[int64]*model.User
	categories map[int64]*model.Category
}

func newGraph(src rowSource) *graph {
	return &graph{
		src:        src,
		users:      make(map[int64]*model.User),
		categories: make(map[int64]*model.Category),
	}
}

// seedCategory registers an already built category.
func (g *graph) seedCategory(c *model.Category) {
	if c != nil && c.ID != 0 {
		g.categories[c.ID] = c
	}
}

// seedUser registers an already built user.
func (g *graph) seedUser(u *model.User) {
	if u != nil && u.ID != 0 {
		g.users[u.ID] = u
	}
}

func (g *graph) user(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := g.users[id]; ok {
		return u, nil
	}
	row, err := g.src.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", id, err)
	}
	u, err := userFromRow(row)
	if err != nil {
		return nil, err
	}
	g.users[id] = u
	return u, nil
}

func (g *graph) category(ctx context.Context, id int64) (*model.Category, error) {
	if c, ok := g.categories[id]; ok {
		return c, nil
	}
	row, err := g.src.GetCategoryByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading category %d: %w", id, err)
	}
	c := categoryFromRow(row)
	g.categories[id] = c
	return c, nil
}

func (g *graph) article(ctx context.Context, row store.Article) (*model.Article, error) {
	a := &model.Article{
		ID:        row.ID,
		Title:     row.Title.String,
		Content:   row.Content,
		Slug:      row.Slug,
		Image:     row.Image.String,
		CreatedAt: row.CreatedAt,
	}

	if row.CategoryID.Valid {
		c, err := g.category(ctx, row.CategoryID.Int64)
		if err != nil {
			return nil, err
		}
		a.SetCategory(c)
	}

	if row.CreatedBy.Valid {
		u, err := g.user(ctx, row.CreatedBy.Int64)
		if err != nil {
			return nil, err
		}
		a.SetCreatedBy(u)
	}

	return a, nil
}

func (g *graph) articles(ctx context.Context, rows []store.Article) ([]*model.Article, error) {
	result := make([]*model.Article, 0, len(rows))
	for _, row := range rows {
		a, err := g.article(ctx, row)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

func (g *graph) comments(ctx context.Context, a *model.Article, rows []store.Comment) ([]*model.Comment, error) {
	result := make([]*model.Comment, 0, len(rows))
	for _, row := range rows {
		c := &model.Comment{
			ID:        row.ID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		}
		u, err := g.user(ctx, row.CommentedBy)
		if err != nil {
			return nil, err
		}
		c.SetCommentedBy(u)
		c.SetArticle(a)
		result = append(result, c)
	}
	return result, nil
}

func userFromRow(row store.User) (*model.User, error) {
	roles, err := model.ParseRoles(row.Roles)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", row.ID, err)
	}
	u := &model.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		CreatedAt:    row.CreatedAt,
		LastLoginAt:  row.LastLoginAt,
	}
	u.SetRoles(roles)
	return u, nil
}

func categoryFromRow(row store.Category) *model.Category {
	return &model.Category{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}
