// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestCategoryAddArticleSetsBackReference(t *testing.T) {
	c := &Category{Name: "Test Category"}
	a := &Article{Slug: "test-article-1"}

	c.AddArticle(a)
	c.AddArticle(a)

	if a.Category() != c {
		t.Errorf("Category() = %v, want %v", a.Category(), c)
	}
	assertArticles(t, "Articles()", c.Articles(), []*Article{a})
}

func TestArticleSetCategoryMovesBetweenCollections(t *testing.T) {
	first := &Category{Name: "Test Category"}
	second := &Category{Name: "Another Category"}
	a := &Article{Slug: "test-article-1"}

	a.SetCategory(first)
	a.SetCategory(second)

	if a.Category() != second {
		t.Errorf("Category() = %v, want second", a.Category())
	}
	assertArticles(t, "first.Articles()", first.Articles(), nil)
	assertArticles(t, "second.Articles()", second.Articles(), []*Article{a})

	a.SetCategory(nil)
	assertArticles(t, "second.Articles()", second.Articles(), nil)
}

func TestCategoryRemoveArticleKeepsForeignBackReference(t *testing.T) {
	owner := &Category{Name: "owner"}
	other := &Category{Name: "other"}
	a := &Article{}

	owner.AddArticle(a)
	other.RemoveArticle(a)

	if a.Category() != owner {
		t.Error("removing from a non-owning category must not clear the back-reference")
	}

	owner.RemoveArticle(a)
	if a.Category() != nil {
		t.Error("Category() should be nil after removal from its owner")
	}
}

func TestUserArticlesAndComments(t *testing.T) {
	u := &User{Email: "test2@example.com"}
	a := &Article{Slug: "another-test-article"}
	c := NewComment("Nice article")

	u.AddArticle(a)
	if a.CreatedBy() != u {
		t.Error("AddArticle should set CreatedBy")
	}

	c.SetCommentedBy(u)
	if len(u.Comments()) != 1 || u.Comments()[0] != c {
		t.Errorf("Comments() = %v", u.Comments())
	}

	u.RemoveArticle(a)
	if a.CreatedBy() != nil {
		t.Error("RemoveArticle should clear CreatedBy")
	}
	u.RemoveComment(c)
	if c.CommentedBy() != nil {
		t.Error("RemoveComment should clear CommentedBy")
	}
}

func TestArticleCommentsKeepInsertionOrder(t *testing.T) {
	a := &Article{Title: "Test Article 1"}
	first := NewComment("first")
	second := NewComment("second")

	a.AddComment(first)
	second.SetArticle(a)

	got := a.Comments()
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("Comments() = %v", got)
	}
	if first.Article() != a || second.Article() != a {
		t.Error("comments should point back at the article")
	}

	other := &Article{Title: "other"}
	first.SetArticle(other)
	if len(a.Comments()) != 1 || a.Comments()[0] != second {
		t.Errorf("Comments() after move = %v", a.Comments())
	}
	if len(other.Comments()) != 1 {
		t.Errorf("other.Comments() = %v", other.Comments())
	}
}

func TestArticleAddRemoveCommentRoundTrip(t *testing.T) {
	a := &Article{Title: "Test Article 1"}
	first := NewComment("first")
	second := NewComment("second")
	a.AddComment(first)
	a.AddComment(second)
	before := slices.Clone(a.Comments())

	c := NewComment("round trip")
	a.AddComment(c)
	if c.Article() != a {
		t.Fatalf("Article() = %v, want a", c.Article())
	}
	a.RemoveComment(c)

	if !slices.Equal(a.Comments(), before) {
		t.Errorf("Comments() = %v, want %v", a.Comments(), before)
	}
	if c.Article() != nil {
		t.Errorf("Article() = %v, want nil", c.Article())
	}
	if first.Article() != a || second.Article() != a {
		t.Error("untouched comments lost their article")
	}
}

func TestCommentEnsureCreatedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	c := NewComment("hello")
	c.EnsureCreatedAt(now)
	if !c.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", c.CreatedAt, now)
	}

	preset := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c = &Comment{Content: "hello", CreatedAt: preset}
	c.EnsureCreatedAt(now)
	if !c.CreatedAt.Equal(preset) {
		t.Errorf("CreatedAt overwritten: %v", c.CreatedAt)
	}
}

func TestCommentValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "content", content: "Great post", wantErr: nil},
		{name: "empty", content: "", wantErr: ErrCommentContentRequired},
		{name: "whitespace", content: "  \n\t", wantErr: ErrCommentContentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewComment(tt.content).Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestArticleHasTitle(t *testing.T) {
	if (&Article{}).HasTitle() {
		t.Error("HasTitle() = true for empty title")
	}
	if !(&Article{Title: "Test Article 1"}).HasTitle() {
		t.Error("HasTitle() = false for titled article")
	}
}
