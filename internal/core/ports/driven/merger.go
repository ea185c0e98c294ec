package driven

import (
	"context"
	"io"
)

// MergePart is one source document in a merge.
type MergePart struct {
	// Title is the bookmark title.
	Title string

	// Content is the PDF to append.
	Content io.ReadSeeker
}

// DocumentMerger assembles the merged output PDF.
type DocumentMerger interface {
	// Inspect validates a PDF for merging and returns its page count.
	// Returns an error wrapping domain.ErrParseFailed if the merger
	// cannot read it.
	Inspect(ctx context.Context, r io.ReadSeeker) (int, error)

	// Merge appends parts in order and adds one bookmark per part pointing
	// at its first page. The result is staged beside dest; dest changes
	// only when the returned StagedFile is committed. It returns the
	// 1-based first page of each part. Errors wrap domain.ErrMergeWriteFailed
	// and leave any existing dest untouched.
	Merge(ctx context.Context, parts []MergePart, dest string) ([]int, StagedFile, error)
}

// StagedFile is an output written next to its destination but not yet
// moved into place.
type StagedFile interface {
	// Commit replaces the destination. On error the destination is unchanged.
	Commit() error

	// Discard drops the staged output and leaves the destination as it was.
	Discard() error
}
