// Package textnorm holds the small text-normalization primitives every
// stage of the pipeline shares. All functions are pure.
package textnorm

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	markupRe     = regexp.MustCompile(`<[^>]*>`)
)

// Normalize collapses runs of whitespace (including newlines) to single
// spaces and trims the ends. Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// StripMarkup removes tag-like substrings and normalizes the remainder.
// Best-effort only: it does not decode HTML entities, which is acceptable
// for feed summaries where tags are the dominant noise.
func StripMarkup(s string) string {
	return Normalize(markupRe.ReplaceAllString(s, " "))
}

// EncodeQuery normalizes a search query and percent-encodes it for safe
// embedding in a URL query parameter. Spaces become %20, not +.
func EncodeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(Normalize(q)), "+", "%20")
}
