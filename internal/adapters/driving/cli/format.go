package cli

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func pluralise(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return itoa(n) + " " + many
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
