// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

const articleColumns = `id, title, content, slug, image, category_id, created_by, created_at`

func scanArticle(row interface{ Scan(...any) error }) (Article, error) {
	var i Article
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Content,
		&i.Slug,
		&i.Image,
		&i.CategoryID,
		&i.CreatedBy,
		&i.CreatedAt,
	)
	return i, err
}

func scanArticles(rows *sql.Rows, err error) ([]Article, error) {
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Article{}
	for rows.Next() {
		i, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createArticle = `-- name: CreateArticle :one
INSERT INTO articles (title, content, slug, image, category_id, created_by, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + articleColumns

// CreateArticleParams holds the columns of a new article.
type CreateArticleParams struct {
	Title      sql.NullString `json:"title"`
	Content    string         `json:"content"`
	Slug       string         `json:"slug"`
	Image      sql.NullString `json:"image"`
	CategoryID sql.NullInt64  `json:"category_id"`
	CreatedBy  sql.NullInt64  `json:"created_by"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (Article, error) {
	row := q.db.QueryRowContext(ctx, createArticle,
		arg.Title,
		arg.Content,
		arg.Slug,
		arg.Image,
		arg.CategoryID,
		arg.CreatedBy,
		arg.CreatedAt,
	)
	i, err := scanArticle(row)
	return i, Classify(err)
}

const getArticleBySlug = `-- name: GetArticleBySlug :one
SELECT ` + articleColumns + ` FROM articles WHERE slug = ?`

func (q *Queries) GetArticleBySlug(ctx context.Context, slug string) (Article, error) {
	return scanArticle(q.db.QueryRowContext(ctx, getArticleBySlug, slug))
}

const listArticles = `-- name: ListArticles :many
SELECT ` + articleColumns + ` FROM articles ORDER BY id DESC LIMIT ?`

// ListArticles returns articles newest first. A negative limit returns all.
func (q *Queries) ListArticles(ctx context.Context, limit int64) ([]Article, error) {
	return scanArticles(q.db.QueryContext(ctx, listArticles, limit))
}

const listArticlesByCategory = `-- name: ListArticlesByCategory :many
SELECT ` + articleColumns + ` FROM articles WHERE category_id = ? ORDER BY id`

func (q *Queries) ListArticlesByCategory(ctx context.Context, categoryID int64) ([]Article, error) {
	return scanArticles(q.db.QueryContext(ctx, listArticlesByCategory, categoryID))
}

const searchArticles = `-- name: SearchArticles :many
SELECT ` + articleColumns + ` FROM articles
WHERE title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'
ORDER BY id DESC
LIMIT ?`

// SearchArticlesParams holds the search term and the maximum result count.
type SearchArticlesParams struct {
	Query string `json:"query"`
	Limit int64  `json:"limit"`
}

// SearchArticles matches Query as a literal substring of the title or
// content, newest first. SQLite's LIKE folds ASCII case only.
func (q *Queries) SearchArticles(ctx context.Context, arg SearchArticlesParams) ([]Article, error) {
	pattern := "%" + EscapeLike(arg.Query) + "%"
	return scanArticles(q.db.QueryContext(ctx, searchArticles, pattern, pattern, arg.Limit))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
