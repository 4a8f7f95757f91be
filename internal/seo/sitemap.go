// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt for crawlers.
package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the blog.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder collects blog URLs and renders them as sitemap XML.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for the site rooted at siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the home page.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddArticle adds an article page. A zero createdAt omits lastmod.
func (b *SitemapBuilder) AddArticle(slug string, createdAt time.Time) {
	u := SitemapURL{
		Loc:        b.siteURL + "/article/" + url.PathEscape(slug),
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.8",
	}
	if !createdAt.IsZero() {
		u.LastMod = createdAt.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// AddCategory adds a category listing. Category names may contain spaces.
func (b *SitemapBuilder) AddCategory(name string) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/category/" + url.PathEscape(name),
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.6",
	})
}

// Len returns the number of collected URLs.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
