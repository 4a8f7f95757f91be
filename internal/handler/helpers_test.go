// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oblog/internal/auth"
	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/render"
	"github.com/olegiv/oblog/internal/repository"
	"github.com/olegiv/oblog/internal/service"
	"github.com/olegiv/oblog/internal/store"
	"github.com/olegiv/oblog/internal/testutil"
	"github.com/olegiv/oblog/web"
)

var (
	fixtureHashOnce sync.Once
	fixtureHash     string
)

// fixturePasswordHash hashes the fixture password once per test binary.
func fixturePasswordHash(t *testing.T) string {
	t.Helper()
	fixtureHashOnce.Do(func() {
		h, err := auth.HashPassword(store.FixtureUserPassword)
		if err != nil {
			panic(err)
		}
		fixtureHash = h
	})
	return fixtureHash
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

// testApp is the full router over an in-memory store, with a cookie jar of one.
type testApp struct {
	router http.Handler
	sm     *scs.SessionManager
	mem    *repository.Memory
	cookie *http.Cookie
}

func newTestApp(t *testing.T, configure ...func(*RouterConfig, *repository.Repositories)) *testApp {
	t.Helper()

	mem := repository.NewMemory()
	testutil.SeedMemory(mem, fixturePasswordHash(t))
	repos := mem.Repositories()

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		t.Fatalf("static fs: %v", err)
	}

	logger := testutil.TestLoggerSilent()
	sm := scs.New()

	cfg := RouterConfig{
		SessionManager: sm,
		DB:             stubPinger{},
		Logger:         logger,
		StaticFS:       static,
		CSRFKey:        []byte("0123456789abcdef0123456789abcdef"),
		IsDev:          true,
		ServerAddr:     "localhost:8080",
		Version:        "test",
	}
	for _, fn := range configure {
		fn(&cfg, &repos)
	}

	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm, Logger: logger, IsDev: true})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	cfg.Renderer = renderer
	cfg.Categories = repos.Categories
	cfg.Content = service.NewContentService(repos, logger, service.ContentOptions{})
	cfg.Auth = service.NewAuthService(repos.Users, logger)
	if cfg.LoginProtection == nil {
		cfg.LoginProtection = middleware.NewLoginProtection(middleware.LoginProtectionConfig{IPRateLimit: 100, IPBurst: 100, Logger: logger})
	}

	return &testApp{router: NewRouter(cfg), sm: sm, mem: mem}
}

// do serves req, sending and then updating the session cookie.
func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == a.sm.Cookie.Name {
			a.cookie = c
		}
	}
	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return a.do(req)
}

func (a *testApp) login(t *testing.T, email, password string) {
	t.Helper()
	rec := a.postForm(RouteLogin, url.Values{"email": {email}, "password": {password}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc == RouteLogin {
		t.Fatalf("login for %s was rejected", email)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body:\n%s", rec.Code, want, rec.Body.String())
	}
}

func assertLocation(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if loc := rec.Header().Get("Location"); loc != want {
		t.Errorf("Location = %q, want %q", loc, want)
	}
}

func assertContains(t *testing.T, rec *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Errorf("body does not contain %q:\n%s", p, body)
		}
	}
}

func assertNotContains(t *testing.T, rec *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, p := range parts {
		if strings.Contains(body, p) {
			t.Errorf("body unexpectedly contains %q", p)
		}
	}
}
