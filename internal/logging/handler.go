// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that enriches records with
// request-scoped attributes.
package logging

import (
	"context"
	"io"
	"log/slog"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	pathKey
)

// WithUserID returns a context whose log records carry user_id.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// WithPath returns a context whose log records carry path.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey, path)
}

// Path returns the request path stored by WithPath.
func Path(ctx context.Context) string {
	path, _ := ctx.Value(pathKey).(string)
	return path
}

// ContextHandler is a slog.Handler that wraps another handler and adds
// request_id, path and user_id attributes found in the record's context.
type ContextHandler struct {
	inner slog.Handler
}

// NewContextHandler wraps inner.
func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

// New returns a logger writing text (or JSON) records at level to w.
func New(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewContextHandler(h))
}

// Enabled implements slog.Handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if id := chimw.GetReqID(ctx); id != "" {
			r.AddAttrs(slog.String("request_id", id))
		}
		if path := Path(ctx); path != "" {
			r.AddAttrs(slog.String("path", path))
		}
		if id, ok := ctx.Value(userIDKey).(int64); ok {
			r.AddAttrs(slog.Int64("user_id", id))
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}
