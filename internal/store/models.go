// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"password_hash"`
	Roles        string       `json:"roles"`
	FirstName    string       `json:"first_name"`
	CreatedAt    time.Time    `json:"created_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
}

// Category is a row of the categories table.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Article is a row of the articles table.
type Article struct {
	ID         int64          `json:"id"`
	Title      sql.NullString `json:"title"`
	Content    string         `json:"content"`
	Slug       string         `json:"slug"`
	Image      sql.NullString `json:"image"`
	CategoryID sql.NullInt64  `json:"category_id"`
	CreatedBy  sql.NullInt64  `json:"created_by"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Comment is a row of the comments table.
type Comment struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	ArticleID   int64     `json:"article_id"`
	CommentedBy int64     `json:"commented_by"`
}
