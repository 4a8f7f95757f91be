// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/oblog/internal/testutil"
)

func TestNew(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	t.Run("development mode", func(t *testing.T) {
		sm := New(db, true)
		if sm.Lifetime != 24*time.Hour {
			t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
		}
		if !sm.Cookie.HttpOnly {
			t.Error("Cookie.HttpOnly should be true")
		}
		if sm.Cookie.SameSite != http.SameSiteLaxMode {
			t.Errorf("Cookie.SameSite = %v, want Lax", sm.Cookie.SameSite)
		}
		if sm.Cookie.Secure {
			t.Error("Cookie.Secure should be false in development")
		}
		if sm.Cookie.Name != CookieName {
			t.Errorf("Cookie.Name = %q", sm.Cookie.Name)
		}
	})

	t.Run("production mode", func(t *testing.T) {
		sm := New(db, false)
		if !sm.Cookie.Secure {
			t.Error("Cookie.Secure should be true in production")
		}
	})
}

func TestFlashRoundTrip(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sm := New(db, true)

	put := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		PutFlash(sm, r.Context(), "Your comment could not be saved.")
	}))
	rec := httptest.NewRecorder()
	put.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookie := rec.Result().Cookies()
	if len(cookie) == 0 || !strings.HasPrefix(cookie[0].Name, CookieName) {
		t.Fatalf("expected session cookie, got %v", cookie)
	}

	var first, second string
	pop := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first = PopFlash(sm, r.Context())
		second = PopFlash(sm, r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie[0])
	pop.ServeHTTP(httptest.NewRecorder(), req)

	if first != "Your comment could not be saved." {
		t.Errorf("first PopFlash = %q", first)
	}
	if second != "" {
		t.Errorf("second PopFlash = %q, want empty", second)
	}
}
