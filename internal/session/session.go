// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the cookie session manager and the keys the
// blog stores in a session.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyUserID       = "user_id"
	KeyFlash        = "flash"
	KeyLastUsername = "last_username"
	KeyReturnTo     = "return_to"
)

// CookieName is the session cookie's name.
const CookieName = "oblog_session"

// New creates a session manager persisting sessions in the SQLite sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}

// PutFlash stores a one-shot message shown on the next rendered page.
func PutFlash(sm *scs.SessionManager, ctx context.Context, msg string) {
	sm.Put(ctx, KeyFlash, msg)
}

// PopFlash returns and clears the pending flash message.
func PopFlash(sm *scs.SessionManager, ctx context.Context) string {
	return sm.PopString(ctx, KeyFlash)
}
