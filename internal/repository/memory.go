// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package repository

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/store"
	"github.com/olegiv/oblog/internal/util"
)

// Memory is an in-memory row store used by unit tests. It mirrors the SQL
// repositories, including ASCII-only case folding in Search.
type Memory struct {
	mu         sync.RWMutex
	users      []store.User
	categories []store.Category
	articles   []store.Article
	comments   []store.Comment
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Repositories returns repositories backed by m.
func (m *Memory) Repositories() Repositories {
	return Repositories{
		Articles:   &memoryArticles{m},
		Categories: &memoryCategories{m},
		Comments:   &memoryComments{m},
		Users:      &memoryUsers{m},
	}
}

// PutUser stores a user row and returns its ID.
func (m *Memory) PutUser(email, firstName, passwordHash string, roles ...string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &model.User{}
	u.SetRoles(roles)
	row := store.User{
		ID:           int64(len(m.users) + 1),
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        u.RolesJSON(),
		FirstName:    firstName,
		CreatedAt:    time.Now(),
	}
	m.users = append(m.users, row)
	return row.ID
}

// PutCategory stores a category row and returns its ID.
func (m *Memory) PutCategory(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := store.Category{ID: int64(len(m.categories) + 1), Name: name, CreatedAt: time.Now()}
	m.categories = append(m.categories, row)
	return row.ID
}

// PutArticle stores an article row and returns its ID. Zero category or
// author IDs are stored as NULL.
func (m *Memory) PutArticle(title, slug, content string, categoryID, authorID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := store.Article{
		ID:         int64(len(m.articles) + 1),
		Title:      util.NullStringFromValue(title),
		Content:    content,
		Slug:       slug,
		CategoryID: util.NullInt64FromID(categoryID),
		CreatedBy:  util.NullInt64FromID(authorID),
		CreatedAt:  time.Now(),
	}
	m.articles = append(m.articles, row)
	return row.ID
}

// CommentCount returns the number of stored comments.
func (m *Memory) CommentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.comments)
}

// GetUserByID implements rowSource. The caller must hold m.mu.
func (m *Memory) GetUserByID(_ context.Context, id int64) (store.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return store.User{}, sql.ErrNoRows
}

// GetCategoryByID implements rowSource. The caller must hold m.mu.
func (m *Memory) GetCategoryByID(_ context.Context, id int64) (store.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return store.Category{}, sql.ErrNoRows
}

type memoryArticles struct{ m *Memory }

func (r *memoryArticles) FindNewest(ctx context.Context, limit int) ([]*model.Article, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	rows := newestFirst(r.m.articles, func(store.Article) bool { return true }, limit)
	return newGraph(r.m).articles(ctx, rows)
}

func (r *memoryArticles) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, row := range r.m.articles {
		if row.Slug == slug {
			return newGraph(r.m).article(ctx, row)
		}
	}
	return nil, ErrNotFound
}

func (r *memoryArticles) FindByCategory(ctx context.Context, c *model.Category) ([]*model.Article, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var rows []store.Article
	for _, row := range r.m.articles {
		if row.CategoryID.Valid && row.CategoryID.Int64 == c.ID {
			rows = append(rows, row)
		}
	}
	g := newGraph(r.m)
	g.seedCategory(c)
	return g.articles(ctx, rows)
}

func (r *memoryArticles) Search(ctx context.Context, query string, limit int) ([]*model.Article, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	rows := newestFirst(r.m.articles, func(row store.Article) bool {
		return containsFoldASCII(row.Title.String, query) || containsFoldASCII(row.Content, query)
	}, limit)
	return newGraph(r.m).articles(ctx, rows)
}

type memoryCategories struct{ m *Memory }

func (r *memoryCategories) FindAll(_ context.Context) ([]*model.Category, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	result := make([]*model.Category, 0, len(r.m.categories))
	for _, row := range r.m.categories {
		result = append(result, categoryFromRow(row))
	}
	return result, nil
}

func (r *memoryCategories) FindByName(_ context.Context, name string) (*model.Category, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, row := range r.m.categories {
		if row.Name == name {
			return categoryFromRow(row), nil
		}
	}
	return nil, ErrNotFound
}

type memoryComments struct{ m *Memory }

func (r *memoryComments) FindByArticle(ctx context.Context, a *model.Article) ([]*model.Comment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var rows []store.Comment
	for _, row := range r.m.comments {
		if row.ArticleID == a.ID {
			rows = append(rows, row)
		}
	}
	g := newGraph(r.m)
	g.seedUser(a.CreatedBy())
	return g.comments(ctx, a, rows)
}

func (r *memoryComments) Add(_ context.Context, c *model.Comment) error {
	articleID, userID, err := commentRefs(c)
	if err != nil {
		return err
	}
	c.EnsureCreatedAt(time.Now())

	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	row := store.Comment{
		ID:          int64(len(r.m.comments) + 1),
		Content:     c.Content,
		CreatedAt:   c.CreatedAt,
		ArticleID:   articleID,
		CommentedBy: userID,
	}
	r.m.comments = append(r.m.comments, row)
	c.ID = row.ID
	return nil
}

type memoryUsers struct{ m *Memory }

func (r *memoryUsers) FindByID(ctx context.Context, id int64) (*model.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	row, err := r.m.GetUserByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return userFromRow(row)
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, row := range r.m.users {
		if row.Email == email {
			return userFromRow(row)
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.users {
		if r.m.users[i].ID == id {
			r.m.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryUsers) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.users {
		if r.m.users[i].ID == id {
			r.m.users[i].LastLoginAt = sql.NullTime{Time: at, Valid: true}
			return nil
		}
	}
	return ErrNotFound
}

// newestFirst returns the rows matching keep in descending ID order,
// at most limit of them when limit > 0.
func newestFirst(rows []store.Article, keep func(store.Article) bool, limit int) []store.Article {
	var result []store.Article
	for i := len(rows) - 1; i >= 0; i-- {
		if !keep(rows[i]) {
			continue
		}
		result = append(result, rows[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

// containsFoldASCII reports whether substr is within s, ignoring case for
// ASCII letters only.
func containsFoldASCII(s, substr string) bool {
	return strings.Contains(lowerASCII(s), lowerASCII(substr))
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
