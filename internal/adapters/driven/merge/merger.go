// Package merge concatenates PDF documents with pdfcpu and adds one
// top-level bookmark per source document.
package merge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/digestpdf/internal/atomicfile"
	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure Merger implements the interface.
var _ driven.DocumentMerger = (*Merger)(nil)

var disableConfigDir sync.Once

// Merger writes merged PDFs through pdfcpu.
type Merger struct {
	// rename is os.Rename; tests replace it to simulate a failed commit.
	rename atomicfile.RenameFunc
}

// New creates a Merger. pdfcpu's on-disk configuration directory is
// disabled so runs never touch the user's pdfcpu settings.
func New() *Merger {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Merger{rename: os.Rename}
}

func (m *Merger) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Inspect validates r as a PDF pdfcpu can merge and returns its page count.
func (m *Merger) Inspect(ctx context.Context, r io.ReadSeeker) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
	}

	n, err := pageCount(r, m.config())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: document has no pages", domain.ErrParseFailed)
	}
	return n, nil
}

// Merge concatenates parts in order and bookmarks the first page of each
// part with its title. The merged PDF is staged in dest's directory and
// replaces dest only on Commit. The returned slice holds the 1-based
// first page of each part.
func (m *Merger) Merge(ctx context.Context, parts []driven.MergePart, dest string) ([]int, driven.StagedFile, error) {
	if len(parts) == 0 {
		return nil, nil, fmt.Errorf("%w: nothing to merge", domain.ErrInvalidInput)
	}
	if dest == "" {
		return nil, nil, fmt.Errorf("%w: output path is required", domain.ErrInvalidInput)
	}

	conf := m.config()
	readers := make([]io.ReadSeeker, len(parts))
	bookmarks := make([]pdfcpu.Bookmark, len(parts))
	firstPages := make([]int, len(parts))

	next := 1
	for i, part := range parts {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if _, err := part.Content.Seek(0, io.SeekStart); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrMergeWriteFailed, part.Title, err)
		}
		n, err := pageCount(part.Content, conf)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrMergeWriteFailed, part.Title, err)
		}
		if _, err := part.Content.Seek(0, io.SeekStart); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrMergeWriteFailed, part.Title, err)
		}

		readers[i] = part.Content
		firstPages[i] = next
		bookmarks[i] = pdfcpu.Bookmark{Title: part.Title, PageFrom: next}
		logger.Debug("merge: %s -> page %d (%d pages)", part.Title, next, n)
		next += n
	}

	var merged bytes.Buffer
	if err := api.MergeRaw(readers, &merged, false, m.config()); err != nil {
		return nil, nil, fmt.Errorf("%w: merge: %v", domain.ErrMergeWriteFailed, err)
	}

	staged, err := atomicfile.Stage(dest, m.rename, func(w io.Writer) error {
		return api.AddBookmarks(bytes.NewReader(merged.Bytes()), w, bookmarks, true, m.config())
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMergeWriteFailed, err)
	}
	return firstPages, stagedOutput{staged}, nil
}

// stagedOutput maps commit failures onto ErrMergeWriteFailed.
type stagedOutput struct {
	*atomicfile.Staged
}

func (s stagedOutput) Commit() error {
	if err := s.Staged.Commit(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMergeWriteFailed, err)
	}
	return nil
}

// pageCount wraps api.PageCount, which can panic on badly broken input.
func pageCount(r io.ReadSeeker, conf *model.Configuration) (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdfcpu: %v", p)
		}
	}()
	return api.PageCount(r, conf)
}
