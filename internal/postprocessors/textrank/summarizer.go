// Package textrank implements extractive summarization with TextRank.
package textrank

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure Summarizer implements the interface.
var _ driven.Summarizer = (*Summarizer)(nil)

// Ranking defaults.
const (
	DefaultDamping       = 0.85
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

// Summarizer ranks sentences with TextRank and keeps the top N in
// document order.
type Summarizer struct {
	damping       float64
	tolerance     float64
	maxIterations int
}

// Option configures the summarizer.
type Option func(*Summarizer)

// WithDamping sets the PageRank damping factor, in (0, 1).
func WithDamping(d float64) Option {
	return func(s *Summarizer) {
		if d > 0 && d < 1 {
			s.damping = d
		}
	}
}

// WithTolerance sets the convergence threshold.
func WithTolerance(tol float64) Option {
	return func(s *Summarizer) {
		if tol > 0 {
			s.tolerance = tol
		}
	}
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

// New creates a summarizer with the given options.
func New(opts ...Option) *Summarizer {
	s := &Summarizer{
		damping:       DefaultDamping,
		tolerance:     DefaultTolerance,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns the top req.Sentences sentences of doc in source
// order. Empty input or any ranking failure yields the fallback excerpt.
func (s *Summarizer) Summarize(ctx context.Context, doc driven.Tokenization, req driven.SummaryRequest) (out driven.Summary) {
	defer func() {
		if p := recover(); p != nil {
			out = Fallback(req.Text, req.FallbackChars, fmt.Errorf("%w: %v", domain.ErrSummarizationFailed, p))
		}
	}()

	if len(doc.Sentences) == 0 {
		return Fallback(req.Text, req.FallbackChars, fmt.Errorf("%w: no sentences", domain.ErrSummarizationFailed))
	}

	units := doc.Units
	if len(units) != len(doc.Sentences) {
		units = make([][]string, len(doc.Sentences))
		for i, sent := range doc.Sentences {
			units[i] = strings.Fields(strings.ToLower(sent))
		}
	}

	scores, err := s.pagerank(ctx, BuildGraph(units))
	if err != nil {
		return Fallback(req.Text, req.FallbackChars, fmt.Errorf("%w: %w", domain.ErrSummarizationFailed, err))
	}

	n := max(req.Sentences, 1)
	picked := Select(scores, n)
	selected := make([]string, len(picked))
	for i, idx := range picked {
		selected[i] = doc.Sentences[idx]
	}

	return driven.Summary{
		Text:      strings.Join(selected, " "),
		Sentences: selected,
		Method:    domain.MethodTextRank,
	}
}

// Fallback returns the first chars characters of text, or all of it when
// shorter, marked as a fallback excerpt.
func Fallback(text string, chars int, cause error) driven.Summary {
	if chars <= 0 {
		chars = domain.DefaultFallbackChars
	}
	if cause == nil {
		cause = domain.ErrSummarizationFailed
	}
	logger.Debug("summary fallback: %v", cause)

	runes := []rune(text)
	if len(runes) > chars {
		runes = runes[:chars]
	}
	return driven.Summary{
		Text:   string(runes),
		Method: domain.MethodFallback,
		Cause:  cause,
	}
}
