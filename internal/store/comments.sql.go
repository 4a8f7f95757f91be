// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const createComment = `-- name: CreateComment :one
INSERT INTO comments (content, created_at, article_id, commented_by)
VALUES (?, ?, ?, ?)
RETURNING id, content, created_at, article_id, commented_by`

// CreateCommentParams holds the columns of a new comment.
type CreateCommentParams struct {
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	ArticleID   int64     `json:"article_id"`
	CommentedBy int64     `json:"commented_by"`
}

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRowContext(ctx, createComment,
		arg.Content,
		arg.CreatedAt,
		arg.ArticleID,
		arg.CommentedBy,
	)
	var i Comment
	err := row.Scan(
		&i.ID,
		&i.Content,
		&i.CreatedAt,
		&i.ArticleID,
		&i.CommentedBy,
	)
	return i, Classify(err)
}

const listCommentsByArticle = `-- name: ListCommentsByArticle :many
SELECT id, content, created_at, article_id, commented_by
FROM comments WHERE article_id = ? ORDER BY id`

func (q *Queries) ListCommentsByArticle(ctx context.Context, articleID int64) ([]Comment, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsByArticle, articleID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Comment{}
	for rows.Next() {
		var i Comment
		if err := rows.Scan(
			&i.ID,
			&i.Content,
			&i.CreatedAt,
			&i.ArticleID,
			&i.CommentedBy,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countComments = `-- name: CountComments :one
SELECT COUNT(*) FROM comments`

func (q *Queries) CountComments(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countComments)
	var count int64
	err := row.Scan(&count)
	return count, err
}
