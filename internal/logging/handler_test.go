// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestContextHandler_AddsRequestAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, false)

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "req-123")
	ctx = WithUserID(ctx, 42)
	ctx = WithPath(ctx, "/comment/test-article-1/new")
	logger.InfoContext(ctx, "comment created", "slug", "test-article-1")

	out := buf.String()
	for _, want := range []string{"request_id=req-123", "user_id=42", "path=/comment/test-article-1/new", "slug=test-article-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestContextHandler_PlainContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, true)

	logger.Info("started")

	out := buf.String()
	if strings.Contains(out, "request_id") || strings.Contains(out, "user_id") {
		t.Errorf("unexpected request attributes: %s", out)
	}
	if !strings.Contains(out, `"msg":"started"`) {
		t.Errorf("expected JSON output, got %s", out)
	}
}

func TestContextHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, false)

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info record should be filtered")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn record should be written")
	}
}

func TestContextHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, false).With("component", "api").WithGroup("req")

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "abc")
	logger.InfoContext(ctx, "handled", "status", 200)

	out := buf.String()
	if !strings.Contains(out, "component=api") {
		t.Errorf("missing component attr: %s", out)
	}
	if !strings.Contains(out, "req.request_id=abc") {
		t.Errorf("missing grouped request id: %s", out)
	}
}

func TestPath(t *testing.T) {
	if got := Path(context.Background()); got != "" {
		t.Errorf("Path() = %q, want empty", got)
	}
	ctx := WithPath(context.Background(), "/search")
	if got := Path(ctx); got != "/search" {
		t.Errorf("Path() = %q, want %q", got, "/search")
	}
}
