package sentences

import (
	"strings"
	"unicode"
)

// DefaultLookback is how far back from the budget a sentence boundary is
// searched for before truncating at the hard limit.
const DefaultLookback = 200

// Truncate shortens text to at most budget characters. The cut is placed
// at the sentence boundary nearest to the budget within lookback
// characters; without one, text is cut at the budget. A budget of 0 or
// less means unlimited.
func Truncate(text string, budget, lookback int) string {
	if budget <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}

	low := max(budget-lookback, 0)
	for b := budget; b > low; b-- {
		if endsSentence(runes, b) {
			return strings.TrimSpace(string(runes[:b]))
		}
	}
	return string(runes[:budget])
}

// endsSentence reports whether a sentence ends immediately before index b.
func endsSentence(runes []rune, b int) bool {
	if b <= 0 || b > len(runes) {
		return false
	}
	i := b - 1
	for i >= 0 && isCloser(runes[i]) {
		i--
	}
	if i < 0 {
		return false
	}
	switch {
	case isWideTerminator(runes[i]):
		return true
	case isTerminator(runes[i]):
		return b == len(runes) || unicode.IsSpace(runes[b])
	default:
		return false
	}
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

// isWideTerminator matches full-width terminators, which end a sentence
// without trailing whitespace.
func isWideTerminator(r rune) bool {
	switch r {
	case '。', '！', '？', '｡':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '」', '』', '）':
		return true
	}
	return false
}

// splitRules splits text after terminators. ASCII terminators must be
// followed by whitespace; full-width ones need not be.
func splitRules(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0
	for b := 1; b <= len(runes); b++ {
		if b < len(runes) && isCloser(runes[b]) {
			continue
		}
		if !endsSentence(runes, b) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start:b])); s != "" {
			out = append(out, s)
		}
		start = b
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}
