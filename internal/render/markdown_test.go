// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestMarkdownRender(t *testing.T) {
	m := NewMarkdown()

	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "emphasis",
			input: "This is **test** content",
			want:  []string{"<strong>test</strong>"},
		},
		{
			name:  "link",
			input: "[docs](https://example.com)",
			want:  []string{`href="https://example.com"`, `rel="nofollow"`},
		},
		{
			name:    "script removed",
			input:   "hello <script>alert(1)</script>",
			notWant: []string{"<script>"},
		},
		{
			name:    "javascript link removed",
			input:   "[x](javascript:alert(1))",
			notWant: []string{"javascript:"},
		},
		{
			name:  "table extension",
			input: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:  []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(m.Render(tt.input))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render(%q) = %q, missing %q", tt.input, got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("Render(%q) = %q, should not contain %q", tt.input, got, w)
				}
			}
		})
	}
}

func TestMarkdownPlainText(t *testing.T) {
	m := NewMarkdown()

	got := m.PlainText("# Title\n\nSome *emphasis* & more")
	if got != "Title Some emphasis & more" {
		t.Errorf("PlainText() = %q", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain comment", "plain comment"},
		{"<b>bold</b> move", "bold move"},
		{"<script>alert(1)</script>", ""},
		{"  spaced  ", "spaced"},
		{"Tom & Jerry", "Tom & Jerry"},
	}

	for _, tt := range tests {
		if got := StripTags(tt.input); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
