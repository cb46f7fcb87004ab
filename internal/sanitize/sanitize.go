// Package sanitize strips markup from user-entered text before it is stored
// or served.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	// policy strips every element and attribute, keeping text content.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes all HTML from s and returns plain, NFC-normalized text with
// surrounding whitespace trimmed. Entities are decoded since the result is
// served as JSON, not HTML.
func Text(s string) string {
	if s == "" {
		return ""
	}
	clean := getPolicy().Sanitize(norm.NFC.String(s))
	return strings.TrimSpace(html.UnescapeString(clean))
}

// Texts applies Text to every element and drops the ones left empty.
func Texts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := Text(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
