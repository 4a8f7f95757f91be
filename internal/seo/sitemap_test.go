// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestNewSitemapBuilderTrimsSlash(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com/")
	if builder.siteURL != "https://example.com" {
		t.Errorf("siteURL = %q, want %q", builder.siteURL, "https://example.com")
	}
	if builder.Len() != 0 {
		t.Errorf("Len() = %d, want 0", builder.Len())
	}
}

func TestSitemapBuilderEntries(t *testing.T) {
	created := time.Date(2025, 1, 15, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	builder := NewSitemapBuilder("https://example.com")
	builder.AddHomepage()
	builder.AddArticle("test-article-1", created)
	builder.AddArticle("no-date", time.Time{})
	builder.AddCategory("Test Category")

	tests := []struct {
		idx      int
		loc      string
		lastMod  string
		priority string
		freq     ChangeFreq
	}{
		{0, "https://example.com/", "", "1.0", ChangeFreqDaily},
		{1, "https://example.com/article/test-article-1", "2025-01-15T09:00:00Z", "0.8", ChangeFreqMonthly},
		{2, "https://example.com/article/no-date", "", "0.8", ChangeFreqMonthly},
		{3, "https://example.com/category/Test%20Category", "", "0.6", ChangeFreqWeekly},
	}

	if builder.Len() != len(tests) {
		t.Fatalf("Len() = %d, want %d", builder.Len(), len(tests))
	}
	for _, tt := range tests {
		u := builder.urls[tt.idx]
		if u.Loc != tt.loc {
			t.Errorf("urls[%d].Loc = %q, want %q", tt.idx, u.Loc, tt.loc)
		}
		if u.LastMod != tt.lastMod {
			t.Errorf("urls[%d].LastMod = %q, want %q", tt.idx, u.LastMod, tt.lastMod)
		}
		if u.Priority != tt.priority {
			t.Errorf("urls[%d].Priority = %q, want %q", tt.idx, u.Priority, tt.priority)
		}
		if u.ChangeFreq != tt.freq {
			t.Errorf("urls[%d].ChangeFreq = %q, want %q", tt.idx, u.ChangeFreq, tt.freq)
		}
	}
}

func TestSitemapBuild(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddHomepage()
	builder.AddArticle("test-article-1", time.Time{})

	out, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !strings.HasPrefix(string(out), xml.Header) {
		t.Error("Build() should start with the XML header")
	}

	var parsed Sitemap
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	if parsed.XMLNS != XMLNamespace {
		t.Errorf("xmlns = %q, want %q", parsed.XMLNS, XMLNamespace)
	}
	if len(parsed.URLs) != 2 {
		t.Errorf("len(URLs) = %d, want 2", len(parsed.URLs))
	}
}
