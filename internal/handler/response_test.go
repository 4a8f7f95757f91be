// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "testing"

func TestLocalRedirect(t *testing.T) {
	const host = "blog.example.com"

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"empty", "", "/"},
		{"plain path", "/article/test-article-1", "/article/test-article-1"},
		{"path with query", "/search?q=go", "/search?q=go"},
		{"same host URL", "https://blog.example.com/category/News", "/category/News"},
		{"other host", "https://evil.example.com/article/x", "/"},
		{"protocol relative", "//evil.example.com/x", "/"},
		{"backslash trick", "/\\evil.example.com", "/"},
		{"scheme without host", "javascript:alert(1)", "/"},
		{"relative path", "article/x", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := localRedirect(tt.target, host, "/"); got != tt.want {
				t.Errorf("localRedirect(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestArticlePath(t *testing.T) {
	if got := ArticlePath("test-article-1"); got != "/article/test-article-1" {
		t.Errorf("ArticlePath = %q, want /article/test-article-1", got)
	}
}
