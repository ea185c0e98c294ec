package sentences

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Variant is one of the closed set of tokenizer variants.
type Variant int

const (
	// General is the default Punkt tokenizer, used for alphabetic scripts
	// and whenever detection is inconclusive.
	General Variant = iota

	// Korean splits on terminal punctuation and strips particles from
	// eojeol when building word units.
	Korean

	// CJK splits on full-width terminators and uses character bigrams as
	// word units, for Chinese and Japanese.
	CJK
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case Korean:
		return "korean"
	case CJK:
		return "cjk"
	default:
		return "general"
	}
}

// Detection is the outcome of language detection.
type Detection struct {
	// Language is the ISO 639-1 tag (ISO 639-3 when no 639-1 code
	// exists); empty when inconclusive.
	Language string

	// Variant is the tokenizer selected for the language.
	Variant Variant

	// Reliable is false when the default tokenizer was chosen because
	// detection was unavailable or inconclusive.
	Reliable bool
}

// Detect identifies the dominant script and language of text with
// whatlanggo. Scripts that are specific to one language family decide
// the variant even when the language guess is unreliable.
func Detect(text string) Detection {
	if strings.TrimSpace(text) == "" {
		return Detection{Variant: General}
	}

	info := whatlanggo.Detect(text)
	lang := ""
	if info.IsReliable() {
		lang = info.Lang.Iso6391()
		if lang == "" {
			lang = info.Lang.Iso6393()
		}
	}

	switch whatlanggo.DetectScript(text) {
	case unicode.Hangul:
		return Detection{Language: "ko", Variant: Korean, Reliable: true}
	case unicode.Hiragana, unicode.Katakana:
		return Detection{Language: "ja", Variant: CJK, Reliable: true}
	case unicode.Han:
		if lang == "" || lang == "ko" {
			lang = "zh"
		}
		return Detection{Language: lang, Variant: CJK, Reliable: true}
	}

	if lang == "" {
		return Detection{Variant: General}
	}
	return Detection{Language: lang, Variant: General, Reliable: true}
}
