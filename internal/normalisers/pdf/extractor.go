// Package pdf extracts text from PDF documents. pdfcpu opens the document
// and removes any encryption, then github.com/ledongthuc/pdf reads the
// page text.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

var disableConfigDir sync.Once

// Extractor reads page text in page order.
type Extractor struct{}

// New creates a new PDF text extractor.
func New() *Extractor {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Extractor{}
}

// Extract returns the concatenated page text of the PDF read from r.
// Encrypted documents are opened with the empty user password, tried
// once, and the decrypted document is returned as Extraction.Content.
func (e *Extractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (result *driven.Extraction, err error) {
	if r == nil || size <= 0 {
		return nil, fmt.Errorf("%w: empty source", domain.ErrParseFailed)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Both parsers panic on some malformed object streams.
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("%w: %v", domain.ErrParseFailed, p)
		}
	}()

	data := make([]byte, size)
	if _, err := r.ReadAt(data, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: read: %v", domain.ErrParseFailed, err)
	}

	decrypted, err := decrypt(data)
	if err != nil {
		return nil, classify(err)
	}
	encrypted := decrypted != nil
	if encrypted {
		data = decrypted
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, classify(err)
	}

	numPages := reader.NumPage()
	texts := make([]string, 0, numPages)
	failed := 0
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		// A page whose content stream cannot be interpreted counts as
		// a page without text.
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Debug("page %d: %v", i, err)
			failed++
			text = ""
		}
		texts = append(texts, text)
	}

	// Every page of a decrypted document failing means the content
	// streams never decrypted to anything readable.
	if encrypted && numPages > 0 && failed == numPages {
		return nil, fmt.Errorf("%w: no page could be decoded", domain.ErrDecryptionFailed)
	}

	return &driven.Extraction{
		Text:      strings.Join(texts, "\n"),
		Pages:     numPages,
		Encrypted: encrypted,
		Content:   decrypted,
	}, nil
}

// decrypt opens data with pdfcpu using the empty user password. It
// returns the document rewritten without encryption, or nil if data is
// not encrypted.
func decrypt(data []byte) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = ""
	conf.OwnerPW = ""

	pctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, err
	}
	if pctx.Encrypt == nil {
		return nil, nil
	}

	// Some writers reuse one RC4 keystream for all strings of an object,
	// so Info strings past the first decrypt to garbage. The merged
	// output never uses source metadata; the writer adds a fresh Info.
	pctx.Info = nil
	pctx.Cmd = model.DECRYPT

	var out bytes.Buffer
	if err := api.WriteContext(pctx, &out); err != nil {
		return nil, fmt.Errorf("%w: rewrite: %v", domain.ErrDecryptionFailed, err)
	}
	return out.Bytes(), nil
}

// classify maps parser errors onto the per-file domain errors.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrDecryptionFailed), errors.Is(err, domain.ErrParseFailed):
		return err
	case errors.Is(err, pdfcpu.ErrWrongPassword),
		errors.Is(err, pdfcpu.ErrUnknownEncryption),
		errors.Is(err, pdf.ErrInvalidPassword):
		return fmt.Errorf("%w: %v", domain.ErrDecryptionFailed, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrParseFailed, err)
}
