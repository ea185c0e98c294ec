// Package sentences splits text into sentences with a tokenizer chosen by
// the detected language.
package sentences

import (
	"context"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure Tokenizer implements the interface.
var _ driven.SentenceTokenizer = (*Tokenizer)(nil)

var (
	punktOnce sync.Once
	punkt     *sentences.DefaultSentenceTokenizer
	punktErr  error
)

// loadPunkt loads the Punkt model once per process.
func loadPunkt() (*sentences.DefaultSentenceTokenizer, error) {
	punktOnce.Do(func() {
		punkt, punktErr = english.NewSentenceTokenizer(nil)
	})
	return punkt, punktErr
}

// Tokenizer detects the language of a sample and dispatches to a variant.
type Tokenizer struct {
	lookback int
	detect   func(string) Detection
}

// Option configures the tokenizer.
type Option func(*Tokenizer)

// WithLookback sets the boundary search window used when truncating.
func WithLookback(n int) Option {
	return func(t *Tokenizer) {
		if n >= 0 {
			t.lookback = n
		}
	}
}

// WithDetector replaces language detection.
func WithDetector(detect func(string) Detection) Option {
	return func(t *Tokenizer) {
		if detect != nil {
			t.detect = detect
		}
	}
}

// New creates a tokenizer with the given options.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		lookback: DefaultLookback,
		detect:   Detect,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize truncates text to maxChars, detects its language and splits it.
func (t *Tokenizer) Tokenize(_ context.Context, text string, maxChars int) driven.Tokenization {
	sample := Truncate(text, maxChars, t.lookback)
	det := t.safeDetect(sample)

	sents := t.split(det.Variant, sample)
	units := make([][]string, len(sents))
	for i, s := range sents {
		units[i] = Units(det.Variant, s)
	}

	status := domain.StageSucceeded
	if !det.Reliable {
		status = domain.StageFallback
	}

	return driven.Tokenization{
		Sentences: sents,
		Units:     units,
		Language:  det.Language,
		Variant:   det.Variant.String(),
		Status:    status,
	}
}

// safeDetect treats a panicking detector as inconclusive.
func (t *Tokenizer) safeDetect(sample string) (det Detection) {
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("language detection failed: %v", p)
			det = Detection{Variant: General}
		}
	}()
	return t.detect(sample)
}

func (t *Tokenizer) split(v Variant, text string) []string {
	switch v {
	case Korean, CJK:
		return splitRules(text)
	default:
		return splitGeneral(text)
	}
}

// splitGeneral runs Punkt, falling back to the rule splitter when the
// model cannot be loaded.
func splitGeneral(text string) []string {
	tok, err := loadPunkt()
	if err != nil {
		logger.Warn("punkt unavailable, using rule splitter: %v", err)
		return splitRules(text)
	}

	var out []string
	for _, s := range tok.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
