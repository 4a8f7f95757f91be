// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the blog.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/olegiv/oblog/internal/repository"
	"github.com/olegiv/oblog/internal/store"
)

// Fixture IDs assigned by SeedMemory.
const (
	UserID            int64 = 1
	AdminID           int64 = 2
	TestCategoryID    int64 = 1
	AnotherCategoryID int64 = 2
	TestArticleID     int64 = 1
	AnotherArticleID  int64 = 2
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "oblog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// TestSeededDB is TestDB with the fixture data loaded.
func TestSeededDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	db, cleanup := TestDB(t)
	if err := store.Seed(context.Background(), db); err != nil {
		cleanup()
		t.Fatalf("Seed: %v", err)
	}
	return db, cleanup
}

// SeedMemory loads the fixture data into m. Password hashes are left as
// the given value so tests need not pay for argon2.
func SeedMemory(m *repository.Memory, passwordHash string) {
	m.PutUser(store.FixtureUserEmail, "Test", passwordHash)
	m.PutUser(store.FixtureAdminEmail, "Test2", passwordHash, "ROLE_ADMIN")
	m.PutCategory("Test Category")
	m.PutCategory("Another Category")
	m.PutArticle("Test Article 1", "test-article-1", "This is test content for article 1", TestCategoryID, AdminID)
	m.PutArticle("Another Test Article", "another-test-article", "This article contains test content for searching", AnotherCategoryID, AdminID)
}

// FixtureMemory returns a Memory preloaded with the fixture data.
func FixtureMemory() *repository.Memory {
	m := repository.NewMemory()
	SeedMemory(m, "")
	return m
}
