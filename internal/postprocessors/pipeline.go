// Package postprocessors turns extracted text into summaries.
package postprocessors

import (
	"context"

	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.SummaryPipeline = (*Pipeline)(nil)

// Pipeline chains a sentence tokenizer and a summarizer.
type Pipeline struct {
	tokenizer  driven.SentenceTokenizer
	summarizer driven.Summarizer
}

// NewPipeline creates a pipeline from its two stages.
func NewPipeline(tokenizer driven.SentenceTokenizer, summarizer driven.Summarizer) *Pipeline {
	return &Pipeline{
		tokenizer:  tokenizer,
		summarizer: summarizer,
	}
}

// Run tokenizes req.Text and summarizes the result. Neither stage fails;
// degraded paths are reported through the returned statuses.
func (p *Pipeline) Run(ctx context.Context, req driven.SummaryRequest) (driven.Tokenization, driven.Summary) {
	tok := p.tokenizer.Tokenize(ctx, req.Text, req.MaxChars)
	logger.Debug("tokenized %d sentences (variant=%s language=%q status=%s)",
		len(tok.Sentences), tok.Variant, tok.Language, tok.Status)

	summary := p.summarizer.Summarize(ctx, tok, req)
	logger.Debug("summary method=%s", summary.Method)

	return tok, summary
}
