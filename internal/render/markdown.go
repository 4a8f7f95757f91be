// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown converts article bodies to sanitized HTML.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewMarkdown creates a converter with GitHub-flavoured extensions and the
// user-generated-content sanitization policy.
func NewMarkdown() *Markdown {
	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// Render converts src to HTML. Raw HTML in src is escaped by goldmark and the
// output is sanitized, so the result is safe to embed.
func (m *Markdown) Render(src string) template.HTML {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(m.policy.SanitizeBytes(buf.Bytes()))
}

// PlainText renders src and strips every tag, for listings and excerpts.
func (m *Markdown) PlainText(src string) string {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return src
	}
	text := html.UnescapeString(m.strict.Sanitize(buf.String()))
	return strings.Join(strings.Fields(text), " ")
}

var commentPolicy = bluemonday.StrictPolicy()

// StripTags removes all markup from user input such as comment bodies.
// Entities produced by the sanitizer are decoded back, so the result is
// plain text that templates escape on output.
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(commentPolicy.Sanitize(s)))
}
