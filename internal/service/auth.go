// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/oblog/internal/auth"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/repository"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies login credentials.
type AuthService struct {
	users  repository.UserRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, logger: logger, now: time.Now}
}

// Authenticate returns the user identified by email when password matches.
// Hashes made with outdated parameters are upgraded on success.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.WarnContext(ctx, "unreadable password hash", "user_id", user.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
				s.logger.WarnContext(ctx, "failed to upgrade password hash", "user_id", user.ID, "error", err)
			} else {
				user.PasswordHash = hash
			}
		}
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.WarnContext(ctx, "failed to record last login", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// User returns the user with the given ID.
func (s *AuthService) User(ctx context.Context, id int64) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}
