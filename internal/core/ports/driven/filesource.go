package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// SourceHandle is an open source file. It supports random access for the
// text extractor and seeking for the merger.
type SourceHandle interface {
	io.ReaderAt
	io.ReadSeeker
	io.Closer
}

// FileSource discovers and opens candidate PDFs.
// Discovery order is unspecified; the core imposes natural-sort order.
type FileSource interface {
	// Discover lists PDFs under root. Subdirectories are included when
	// recursive is true. Returns domain.ErrNotFound if root does not exist.
	Discover(ctx context.Context, root string, recursive bool) ([]domain.SourceFile, error)

	// Open opens a discovered file for reading.
	Open(ctx context.Context, file domain.SourceFile) (SourceHandle, error)
}
