// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog/internal/metrics"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/article/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.HTTPRequests.WithLabelValues("/article/{slug}", http.MethodGet, "404")
	before := metrics.CounterValue(counter)

	for _, slug := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/article/"+slug, nil))
	}

	if got := metrics.CounterValue(counter) - before; got != 2 {
		t.Errorf("counter delta = %v, want 2", got)
	}
}

func TestMetrics_ImplicitOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	counter := metrics.HTTPRequests.WithLabelValues("/search", http.MethodGet, "200")
	before := metrics.CounterValue(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/search?q=x", nil))

	if got := metrics.CounterValue(counter) - before; got != 1 {
		t.Errorf("counter delta = %v, want 1", got)
	}
}
