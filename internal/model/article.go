// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"time"
)

// Article is a published blog post addressed by its slug.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	category  *Category
	createdBy *User
	comments  []*Comment
}

// HasTitle reports whether the article carries a non-empty title.
func (a *Article) HasTitle() bool {
	return a.Title != ""
}

// Category returns the article's category, or nil.
func (a *Article) Category() *Category {
	return a.category
}

// SetCategory moves the article to c, updating both categories' collections.
func (a *Article) SetCategory(c *Category) {
	if a.category == c {
		return
	}
	prev := a.category
	a.category = c
	if prev != nil {
		prev.RemoveArticle(a)
	}
	if c != nil {
		c.AddArticle(a)
	}
}

// CreatedBy returns the article's author, or nil.
func (a *Article) CreatedBy() *User {
	return a.createdBy
}

// SetCreatedBy moves the article to u, updating both users' collections.
func (a *Article) SetCreatedBy(u *User) {
	if a.createdBy == u {
		return
	}
	prev := a.createdBy
	a.createdBy = u
	if prev != nil {
		prev.RemoveArticle(a)
	}
	if u != nil {
		u.AddArticle(a)
	}
}

// Comments returns the comments attached to the article.
func (a *Article) Comments() []*Comment {
	return a.comments
}

// AddComment attaches c to the article.
func (a *Article) AddComment(c *Comment) {
	if c == nil || slices.Contains(a.comments, c) {
		return
	}
	a.comments = append(a.comments, c)
	if c.article != a {
		c.SetArticle(a)
	}
}

// RemoveComment detaches c from the article.
func (a *Article) RemoveComment(c *Comment) {
	i := slices.Index(a.comments, c)
	if i < 0 {
		return
	}
	a.comments = slices.Delete(a.comments, i, i+1)
	if c.article == a {
		c.SetArticle(nil)
	}
}
