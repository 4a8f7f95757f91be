// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"strings"
	"time"
)

// ErrCommentContentRequired is returned when a comment has no content.
var ErrCommentContentRequired = errors.New("comment content is required")

// Comment is a reader's remark on an article.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	article     *Article
	commentedBy *User
}

// NewComment returns an unsaved comment draft.
func NewComment(content string) *Comment {
	return &Comment{Content: content}
}

// Validate checks the fields a submitted comment must carry.
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return ErrCommentContentRequired
	}
	return nil
}

// EnsureCreatedAt stamps the creation time unless one is already set.
func (c *Comment) EnsureCreatedAt(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}

// Article returns the commented article, or nil.
func (c *Comment) Article() *Article {
	return c.article
}

// SetArticle moves the comment to a, updating both articles' collections.
func (c *Comment) SetArticle(a *Article) {
	if c.article == a {
		return
	}
	prev := c.article
	c.article = a
	if prev != nil {
		prev.RemoveComment(c)
	}
	if a != nil {
		a.AddComment(c)
	}
}

// CommentedBy returns the comment's author, or nil.
func (c *Comment) CommentedBy() *User {
	return c.commentedBy
}

// SetCommentedBy moves the comment to u, updating both users' collections.
func (c *Comment) SetCommentedBy(u *User) {
	if c.commentedBy == u {
		return
	}
	prev := c.commentedBy
	c.commentedBy = u
	if prev != nil {
		prev.RemoveComment(c)
	}
	if u != nil {
		u.AddComment(c)
	}
}
