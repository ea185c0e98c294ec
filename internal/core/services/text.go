package services

import "strings"

// collapseWhitespace replaces every whitespace run with one space and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
