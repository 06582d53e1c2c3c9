// Package textutil provides small text helpers shared across the
// extraction packages.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// CollapseSpace flattens all whitespace runs (including newlines) to single
// spaces and trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most max bytes without splitting a UTF-8 rune.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// Ellipsize cuts s to at most max bytes on a rune boundary and marks the
// cut with "...".
func Ellipsize(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return Truncate(s, max) + "..."
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ContainsFold reports whether substr occurs in s, case-insensitively.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
