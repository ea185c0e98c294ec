package driven

import (
	"context"
	"io"
)

// Extraction is the text extracted from one PDF.
type Extraction struct {
	// Text is the page text in page order, joined with "\n".
	// Empty means the document has no extractable text, which is not an error.
	Text string

	// Pages is the number of pages the extractor read.
	Pages int

	// Encrypted is true if the document was encrypted and opened with
	// the empty password.
	Encrypted bool

	// Content is the decrypted document when Encrypted is set, nil
	// otherwise. Merging uses it in place of the source bytes.
	Content []byte
}

// TextExtractor reads the text of a PDF.
type TextExtractor interface {
	// Extract returns the text of the PDF read from r.
	// Returns an error wrapping domain.ErrDecryptionFailed when the empty
	// password does not open an encrypted document, and one wrapping
	// domain.ErrParseFailed when the document is unreadable.
	Extract(ctx context.Context, r io.ReaderAt, size int64) (*Extraction, error)
}
