package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NaturalKey is a comparison key that orders embedded digit runs by
// numeric value and everything else as case-folded text.
// The zero value sorts before every non-empty key.
type NaturalKey struct {
	segments []keySegment
	original string
}

type keySegment struct {
	numeric bool
	// text holds the folded text, or the digits with leading zeros removed.
	text string
	// zeros counts stripped leading zeros; "07" sorts after "7".
	zeros int
}

// NewNaturalKey builds the natural-sort key for s.
func NewNaturalKey(s string) NaturalKey {
	key := NaturalKey{original: s}
	normalised := norm.NFC.String(s)
	// Casers are stateful; one per key keeps this safe for concurrent use.
	folder := cases.Fold()

	var (
		buf     strings.Builder
		numeric bool
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		seg := keySegment{numeric: numeric}
		if numeric {
			digits := buf.String()
			trimmed := strings.TrimLeft(digits, "0")
			seg.zeros = len(digits) - len(trimmed)
			seg.text = trimmed
		} else {
			seg.text = folder.String(buf.String())
		}
		key.segments = append(key.segments, seg)
		buf.Reset()
	}

	for _, r := range normalised {
		isDigit := r >= '0' && r <= '9'
		if buf.Len() > 0 && isDigit != numeric {
			flush()
		}
		numeric = isDigit
		buf.WriteRune(r)
	}
	flush()

	return key
}

// String returns the string the key was built from.
func (k NaturalKey) String() string {
	return k.original
}

// Compare returns -1, 0 or +1. Keys whose segments are equal are
// ordered by their original strings so the ordering is total.
func (k NaturalKey) Compare(other NaturalKey) int {
	n := min(len(k.segments), len(other.segments))
	for i := 0; i < n; i++ {
		if c := k.segments[i].compare(other.segments[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k.segments) < len(other.segments):
		return -1
	case len(k.segments) > len(other.segments):
		return 1
	}
	return strings.Compare(k.original, other.original)
}

func (s keySegment) compare(other keySegment) int {
	if s.numeric != other.numeric {
		// Numbers sort before text, as in "1a" < "a1".
		if s.numeric {
			return -1
		}
		return 1
	}
	if !s.numeric {
		return strings.Compare(s.text, other.text)
	}
	// Digit strings without leading zeros compare by length first.
	if len(s.text) != len(other.text) {
		if len(s.text) < len(other.text) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(s.text, other.text); c != 0 {
		return c
	}
	switch {
	case s.zeros < other.zeros:
		return -1
	case s.zeros > other.zeros:
		return 1
	}
	return 0
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return NewNaturalKey(a).Compare(NewNaturalKey(b)) < 0
}

// SortNatural sorts names in place in natural order.
func SortNatural(names []string) {
	keys := make(map[string]NaturalKey, len(names))
	for _, n := range names {
		keys[n] = NewNaturalKey(n)
	}
	slices.SortStableFunc(names, func(a, b string) int {
		return keys[a].Compare(keys[b])
	})
}
