// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Categories and genres are addressed by slug (e.g. "science-fiction"). When a
// client omits the slug on creation, one is derived from the display name.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlug matches any run of characters outside the slug alphabet.
	nonSlug = regexp.MustCompile(`[^a-z0-9_-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// Accents are stripped after NFD decomposition, the result is lowercased,
// every other character becomes a hyphen, and hyphen runs are collapsed.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonSlug.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// Truncate shortens a slug to at most max bytes without leaving a trailing
// hyphen. Slugs are ASCII, so bytes and characters coincide.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], "-")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
