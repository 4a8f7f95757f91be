// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/olegiv/oblog/internal/auth"
	"github.com/olegiv/oblog/internal/repository"
	"github.com/olegiv/oblog/internal/testutil"
)

func newTestAuthService(t *testing.T, password string) (*AuthService, repository.UserRepository) {
	t.Helper()

	hash, err := auth.Hash(password, auth.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	mem := repository.NewMemory()
	testutil.SeedMemory(mem, hash)
	users := mem.Repositories().Users
	return NewAuthService(users, testutil.TestLoggerSilent()), users
}

func TestAuthenticate(t *testing.T) {
	svc, users := newTestAuthService(t, "test_password")
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "test@example.com", "test_password")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != testutil.UserID {
		t.Errorf("user ID = %d", user.ID)
	}

	reloaded, err := users.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !reloaded.LastLoginAt.Valid {
		t.Error("last login should be recorded")
	}
	if auth.NeedsRehash(reloaded.PasswordHash) {
		t.Error("weak hash should be upgraded after login")
	}
}

func TestAuthenticateRejects(t *testing.T) {
	svc, _ := newTestAuthService(t, "test_password")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "test@example.com", password: "nope"},
		{name: "unknown email", email: "nobody@example.com", password: "test_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
