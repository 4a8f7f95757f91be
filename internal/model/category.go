// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"time"
)

// Category groups articles under a unique name.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`

	articles []*Article
}

// Articles returns the articles filed under the category.
func (c *Category) Articles() []*Article {
	return c.articles
}

// AddArticle files a under the category.
func (c *Category) AddArticle(a *Article) {
	if a == nil || slices.Contains(c.articles, a) {
		return
	}
	c.articles = append(c.articles, a)
	if a.category != c {
		a.SetCategory(c)
	}
}

// RemoveArticle detaches a from the category.
func (c *Category) RemoveArticle(a *Article) {
	i := slices.Index(c.articles, a)
	if i < 0 {
		return
	}
	c.articles = slices.Delete(c.articles, i, i+1)
	if a.category == c {
		a.SetCategory(nil)
	}
}
