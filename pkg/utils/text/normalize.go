// ABOUTME: Text normalization helpers for feed-supplied strings
// ABOUTME: Collapses the line wrapping and indentation arXiv embeds in titles

package text

import "strings"

// CollapseWhitespace trims the string and replaces every run of whitespace,
// including the newline-plus-indent wrapping in feed titles, with one space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
