// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oblog/internal/logging"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/session"
)

type stubUsers map[int64]*model.User

func (s stubUsers) User(_ context.Context, id int64) (*model.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

// loginAs returns a session cookie for a session holding userID.
func loginAs(t *testing.T, sm *scs.SessionManager, userID int64) *http.Cookie {
	t.Helper()
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), session.KeyUserID, userID)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}
	return cookies[0]
}

func TestAuth(t *testing.T) {
	t.Run("redirects anonymous GET and remembers target", func(t *testing.T) {
		sm := scs.New()
		var returnTo string
		handler := sm.LoadAndSave(Auth(sm)(okHandler()))
		probe := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			returnTo = sm.GetString(r.Context(), session.KeyReturnTo)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/article/test-article-1?x=1", nil))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != LoginPath {
			t.Errorf("Location = %q, want %q", loc, LoginPath)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(rec.Result().Cookies()[0])
		probe.ServeHTTP(httptest.NewRecorder(), req)
		if returnTo != "/article/test-article-1?x=1" {
			t.Errorf("return_to = %q", returnTo)
		}
	})

	t.Run("anonymous POST never reaches handler", func(t *testing.T) {
		sm := scs.New()
		called := false
		handler := sm.LoadAndSave(Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/comment/test-article-1/new", nil))

		if called {
			t.Error("handler should not be called for anonymous POST")
		}
		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
	})

	t.Run("authenticated passes", func(t *testing.T) {
		sm := scs.New()
		cookie := loginAs(t, sm, 1)
		handler := sm.LoadAndSave(Auth(sm)(okHandler()))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestAuthAPI(t *testing.T) {
	sm := scs.New()
	handler := sm.LoadAndSave(AuthAPI(sm)(okHandler()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/articles/x/comments", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestLoadUser(t *testing.T) {
	users := stubUsers{1: {ID: 1, Email: "test@example.com", FirstName: "Test"}}

	t.Run("loads user into context", func(t *testing.T) {
		sm := scs.New()
		cookie := loginAs(t, sm, 1)

		var got *model.User
		var loggedID int64
		handler := sm.LoadAndSave(LoadUser(sm, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = GetUser(r)
			loggedID = GetUserID(r)
		})))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got == nil || got.Email != "test@example.com" {
			t.Fatalf("GetUser() = %v", got)
		}
		if loggedID != 1 {
			t.Errorf("GetUserID() = %d, want 1", loggedID)
		}
	})

	t.Run("stale session redirects to login", func(t *testing.T) {
		sm := scs.New()
		cookie := loginAs(t, sm, 99)
		handler := sm.LoadAndSave(LoadUser(sm, users)(okHandler()))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
	})
}

func TestOptionalLoadUser(t *testing.T) {
	users := stubUsers{1: {ID: 1}}
	sm := scs.New()
	cookie := loginAs(t, sm, 99)

	var got *model.User
	handler := sm.LoadAndSave(OptionalLoadUser(sm, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got != nil {
		t.Errorf("GetUser() = %v, want nil for unknown user", got)
	}
}

func TestGetUser_NoUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if user := GetUser(req); user != nil {
		t.Errorf("GetUser() = %v, want nil", user)
	}
	if id := GetUserID(req); id != 0 {
		t.Errorf("GetUserID() = %d, want 0", id)
	}
}

func TestRequestPath(t *testing.T) {
	var path string
	handler := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = GetRequestPath(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/search?q=test", nil))

	if path != "/search" {
		t.Errorf("GetRequestPath() = %q, want %q", path, "/search")
	}
	if got := logging.Path(context.Background()); got != "" {
		t.Errorf("logging.Path(background) = %q", got)
	}
}
