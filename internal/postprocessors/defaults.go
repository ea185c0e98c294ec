package postprocessors

import (
	"github.com/custodia-labs/digestpdf/internal/postprocessors/sentences"
	"github.com/custodia-labs/digestpdf/internal/postprocessors/textrank"
)

// NewDefaultPipeline wires the language-aware tokenizer to the TextRank
// summarizer with default options.
func NewDefaultPipeline() *Pipeline {
	return NewPipeline(sentences.New(), textrank.New())
}
