// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// NormalizeTagName converts user input to the canonical tag name. The
// normalized form is the tag's identity: binds and unbinds that spell the
// same tag differently must land on the same row.
//
// Rules: trim and lowercase, turn word separators into dashes, collapse
// dash runs, trim dangling dashes. Non-ASCII letters are kept; tags may be
// in any language.
//
// Examples:
//
//	"Slow Reads"    → "slow-reads"
//	"slow_reads"    → "slow-reads"
//	"  multi   word " → "multi-word"
func NormalizeTagName(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
