// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the blog's domain entities: User, Category, Article
// and Comment, together with the helpers that keep both sides of their
// relationships in sync.
package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Role names granted to users.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents a registered blog user.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	FirstName    string       `json:"firstName"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastLoginAt  sql.NullTime `json:"-"`

	roles    []string
	articles []*Article
	comments []*Comment
}

// Identifier returns the value that identifies the user at login.
func (u *User) Identifier() string {
	return u.Email
}

// Roles returns the stored roles plus ROLE_USER, without duplicates.
func (u *User) Roles() []string {
	roles := make([]string, 0, len(u.roles)+1)
	for _, r := range u.roles {
		if r == "" || slices.Contains(roles, r) {
			continue
		}
		roles = append(roles, r)
	}
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

// SetRoles replaces the stored roles.
func (u *User) SetRoles(roles []string) {
	u.roles = slices.Clone(roles)
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles(), role)
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// RolesJSON encodes the stored roles for persistence.
func (u *User) RolesJSON() string {
	if len(u.roles) == 0 {
		return "[]"
	}
	data, err := json.Marshal(u.roles)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// ParseRoles decodes a persisted roles column. An empty value yields no roles.
func ParseRoles(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var roles []string
	if err := json.Unmarshal([]byte(s), &roles); err != nil {
		return nil, fmt.Errorf("parsing roles: %w", err)
	}
	return roles, nil
}

// Articles returns the articles authored by the user.
func (u *User) Articles() []*Article {
	return u.articles
}

// AddArticle records the user as the author of a.
func (u *User) AddArticle(a *Article) {
	if a == nil || slices.Contains(u.articles, a) {
		return
	}
	u.articles = append(u.articles, a)
	if a.createdBy != u {
		a.SetCreatedBy(u)
	}
}

// RemoveArticle detaches a from the user. The article's author is cleared
// only if it still points at u.
func (u *User) RemoveArticle(a *Article) {
	i := slices.Index(u.articles, a)
	if i < 0 {
		return
	}
	u.articles = slices.Delete(u.articles, i, i+1)
	if a.createdBy == u {
		a.SetCreatedBy(nil)
	}
}

// Comments returns the comments written by the user.
func (u *User) Comments() []*Comment {
	return u.comments
}

// AddComment records the user as the author of c.
func (u *User) AddComment(c *Comment) {
	if c == nil || slices.Contains(u.comments, c) {
		return
	}
	u.comments = append(u.comments, c)
	if c.commentedBy != u {
		c.SetCommentedBy(u)
	}
}

// RemoveComment detaches c from the user.
func (u *User) RemoveComment(c *Comment) {
	i := slices.Index(u.comments, c)
	if i < 0 {
		return
	}
	u.comments = slices.Delete(u.comments, i, i+1)
	if c.commentedBy == u {
		c.SetCommentedBy(nil)
	}
}
