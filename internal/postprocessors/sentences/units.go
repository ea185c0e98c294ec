package sentences

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// stopwords are dropped from general word units.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "he": {}, "her": {}, "his": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "of": {},
	"on": {}, "or": {}, "she": {}, "so": {}, "that": {}, "the": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"we": {}, "were": {}, "which": {}, "while": {}, "will": {}, "with": {}, "you": {},
}

// particles are Korean postpositions stripped from the end of an eojeol,
// longest first.
var particles = []string{
	"에서는", "으로는", "에게서",
	"에서", "에게", "으로", "부터", "까지", "처럼", "보다", "하고",
	"은", "는", "이", "가", "을", "를", "의", "에", "로", "와", "과", "도", "만",
}

// Units returns the comparable word units of a sentence for a variant.
func Units(v Variant, sentence string) []string {
	folder := cases.Fold()
	text := norm.NFC.String(sentence)

	switch v {
	case Korean:
		return koreanUnits(folder, text)
	case CJK:
		return cjkUnits(folder, text)
	default:
		return generalUnits(folder, text)
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func generalUnits(folder cases.Caser, text string) []string {
	var units []string
	for _, w := range strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) }) {
		w = folder.String(w)
		if _, stop := stopwords[w]; stop {
			continue
		}
		units = append(units, w)
	}
	return units
}

func koreanUnits(folder cases.Caser, text string) []string {
	var units []string
	for _, field := range strings.Fields(text) {
		w := strings.TrimFunc(field, func(r rune) bool { return !isWordRune(r) })
		if w == "" {
			continue
		}
		w = stripParticle(w)
		units = append(units, folder.String(w))
	}
	return units
}

func stripParticle(word string) string {
	n := len([]rune(word))
	for _, p := range particles {
		if strings.HasSuffix(word, p) && n > len([]rune(p)) {
			return strings.TrimSuffix(word, p)
		}
	}
	return word
}

func isIdeographic(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
}

// cjkUnits emits character bigrams for ideographic runs and folded words
// for everything else.
func cjkUnits(folder cases.Caser, text string) []string {
	var (
		units []string
		run   []rune
		word  []rune
	)
	flushRun := func() {
		switch {
		case len(run) == 1:
			units = append(units, string(run))
		case len(run) > 1:
			for i := 0; i+1 < len(run); i++ {
				units = append(units, string(run[i:i+2]))
			}
		}
		run = run[:0]
	}
	flushWord := func() {
		if len(word) > 0 {
			units = append(units, generalUnits(folder, string(word))...)
			word = word[:0]
		}
	}

	for _, r := range text {
		switch {
		case isIdeographic(r):
			flushWord()
			run = append(run, r)
		case isWordRune(r):
			flushRun()
			word = append(word, r)
		default:
			flushRun()
			flushWord()
		}
	}
	flushRun()
	flushWord()
	return units
}
