// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

// Matches each run of characters outside the slug alphabet.
var nonSlugRunRe = regexp.MustCompile(`[^a-z0-9]+`)

// BookSlug derives a book's identity key from its title.
//
// The title is lowercased and every run of characters outside [a-z0-9] is
// replaced with a single dash. Leading and trailing dashes are kept, so
// slugs stay identical to the ones the browser storefront produced:
//
//	"Test Book"          → "test-book"
//	"The Republic"       → "the-republic"
//	"Beyond Good & Evil" → "beyond-good-evil"
//	"Why?"               → "why-"
//	"  Café Noir"        → "-caf-noir"
//
// Distinct titles can produce the same slug; callers decide what a
// collision means.
func BookSlug(title string) string {
	return nonSlugRunRe.ReplaceAllString(strings.ToLower(title), "-")
}

// SplitTags parses a comma-separated tag list as typed into the authoring
// form: each tag is trimmed and blank entries are dropped. Order and case are
// preserved.
func SplitTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
