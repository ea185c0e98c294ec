package driven

import (
	"context"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// SummaryRequest is the input to the summary pipeline for one file.
type SummaryRequest struct {
	// Text is the whitespace-normalised extracted text.
	Text string

	// Sentences is the number of summary sentences, at least 1.
	Sentences int

	// MaxChars bounds the tokenized sample. 0 means unlimited.
	MaxChars int

	// FallbackChars is the length of the fallback excerpt.
	FallbackChars int
}

// Tokenization is the result of splitting a text sample into sentences.
type Tokenization struct {
	// Sentences are in source order.
	Sentences []string

	// Units are the comparable word units of each sentence, aligned with
	// Sentences. The summarizer measures similarity on them.
	Units [][]string

	// Language is the detected ISO 639-1 tag; empty if inconclusive.
	Language string

	// Variant names the tokenizer that ran.
	Variant string

	// Status is StageFallback when detection was inconclusive and the
	// default tokenizer was used, StageSucceeded otherwise.
	Status domain.StageStatus
}

// SentenceTokenizer splits text into sentences using rules chosen by the
// detected language. It never fails: inconclusive detection selects the
// default tokenizer.
type SentenceTokenizer interface {
	// Tokenize truncates text to maxChars at a sentence boundary when
	// possible, then splits it.
	Tokenize(ctx context.Context, text string, maxChars int) Tokenization
}

// Summary is the output of the summarizer.
type Summary struct {
	// Text is the summary text.
	Text string

	// Sentences are the selected sentences in source order.
	// Empty for fallback excerpts.
	Sentences []string

	// Method reports which path produced Text.
	Method domain.SummaryMethod

	// Cause is the reason the fallback fired; nil for ranked summaries.
	Cause error
}

// Summarizer produces an extractive summary.
// It never returns an error: on any failure it falls back to a prefix of
// req.Text.
type Summarizer interface {
	Summarize(ctx context.Context, doc Tokenization, req SummaryRequest) Summary
}

// SummaryPipeline chains tokenization and summarization.
type SummaryPipeline interface {
	Run(ctx context.Context, req SummaryRequest) (Tokenization, Summary)
}
