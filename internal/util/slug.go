// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small helpers shared across packages: article slug
// generation and validation, and SQL null conversions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches runs of characters not allowed in a slug.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	// validSlug matches lowercase words of letters and digits joined by single hyphens.
	validSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// asciiSlug is validSlug with upper-case letters allowed, used to guard routes.
	asciiSlug = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*$`)
)

// Slugify converts a title to a URL-friendly slug. Accents are stripped,
// other scripts are transliterated to ASCII, and every run of remaining
// punctuation or whitespace becomes one hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = unidecode.Unidecode(result)
	result = strings.ToLower(result)
	result = nonSlugChars.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s has the shape Slugify produces.
func IsValidSlug(s string) bool {
	return validSlug.MatchString(s)
}

// IsASCIISlug reports whether s is hyphen-joined ASCII letters and digits.
// Route parameters that fail this check never reach the database.
func IsASCIISlug(s string) bool {
	return asciiSlug.MatchString(s)
}
