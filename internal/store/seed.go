// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/oblog/internal/auth"
	"github.com/olegiv/oblog/internal/util"
)

// Fixture accounts created by Seed.
const (
	FixtureUserEmail     = "test@example.com"
	FixtureUserPassword  = "test_password"
	FixtureAdminEmail    = "test2@example.com"
	FixtureAdminPassword = "test_password2"
)

// ErrInvalidSlug is returned by Seed when a fixture title yields no usable slug.
var ErrInvalidSlug = errors.New("invalid slug")

type seedUser struct {
	email     string
	password  string
	firstName string
	roles     string
}

// seedArticle slugs are derived from their titles.
type seedArticle struct {
	title    string
	content  string
	image    string
	category string
	author   string
}

var (
	seedUsers = []seedUser{
		{email: FixtureUserEmail, password: FixtureUserPassword, firstName: "Test", roles: `["ROLE_USER"]`},
		{email: FixtureAdminEmail, password: FixtureAdminPassword, firstName: "Test2", roles: `["ROLE_ADMIN"]`},
	}

	seedCategories = []string{"Test Category", "Another Category"}

	seedArticles = []seedArticle{
		{
			title:    "Test Article 1",
			content:  "This is test content for article 1",
			image:    "test-image-1.jpg",
			category: "Test Category",
			author:   FixtureAdminEmail,
		},
		{
			title:    "Another Test Article",
			content:  "This article contains test content for searching",
			image:    "test-image-2.jpg",
			category: "Another Category",
			author:   FixtureAdminEmail,
		},
	}
)

// Seed inserts the fixture users, categories and articles. Rows that
// already exist are left untouched, so Seed can run on every start.
func Seed(ctx context.Context, db *sql.DB) error {
	return RunInTx(ctx, db, func(q *Queries) error {
		now := time.Now()

		userIDs := make(map[string]int64, len(seedUsers))
		for _, su := range seedUsers {
			id, err := seedUserRow(ctx, q, su, now)
			if err != nil {
				return err
			}
			userIDs[su.email] = id
		}

		categoryIDs := make(map[string]int64, len(seedCategories))
		for _, name := range seedCategories {
			id, err := seedCategoryRow(ctx, q, name, now)
			if err != nil {
				return err
			}
			categoryIDs[name] = id
		}

		for i, sa := range seedArticles {
			slug := util.Slugify(sa.title)
			if !util.IsValidSlug(slug) {
				return fmt.Errorf("article %q: %w", sa.title, ErrInvalidSlug)
			}
			if _, err := q.GetArticleBySlug(ctx, slug); err == nil {
				continue
			} else if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("checking article %q: %w", slug, err)
			}

			article, err := q.CreateArticle(ctx, CreateArticleParams{
				Title:      util.NullStringFromValue(sa.title),
				Content:    sa.content,
				Slug:       slug,
				Image:      util.NullStringFromValue(sa.image),
				CategoryID: util.NullInt64FromID(categoryIDs[sa.category]),
				CreatedBy:  util.NullInt64FromID(userIDs[sa.author]),
				// Keep fixture order stable for newest-first listings.
				CreatedAt: now.Add(time.Duration(i) * time.Second),
			})
			if err != nil {
				return fmt.Errorf("creating article %q: %w", slug, err)
			}
			slog.Info("seeded article", "id", article.ID, "slug", article.Slug)
		}

		return nil
	})
}

func seedUserRow(ctx context.Context, q *Queries, su seedUser, now time.Time) (int64, error) {
	existing, err := q.GetUserByEmail(ctx, su.email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("checking user %q: %w", su.email, err)
	}

	passwordHash, err := auth.HashPassword(su.password)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        su.email,
		PasswordHash: passwordHash,
		Roles:        su.roles,
		FirstName:    su.firstName,
		CreatedAt:    now,
	})
	if err != nil {
		return 0, fmt.Errorf("creating user %q: %w", su.email, err)
	}

	slog.Info("seeded user", "id", user.ID, "email", user.Email)
	return user.ID, nil
}

func seedCategoryRow(ctx context.Context, q *Queries, name string, now time.Time) (int64, error) {
	existing, err := q.GetCategoryByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("checking category %q: %w", name, err)
	}

	category, err := q.CreateCategory(ctx, CreateCategoryParams{Name: name, CreatedAt: now})
	if err != nil {
		return 0, fmt.Errorf("creating category %q: %w", name, err)
	}
	return category.ID, nil
}
