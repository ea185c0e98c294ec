// Package pdftest builds small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf/v2"
)

// Page is the text of one fixture page. Each line is written as one cell.
type Page []string

// Options control fixture generation.
type Options struct {
	// UserPassword encrypts the document when set.
	UserPassword string

	// Encrypt protects the document with only an owner password, so the
	// empty user password opens it.
	Encrypt bool
}

// Bytes renders pages to PDF bytes. A document without pages gets one
// blank page, which has no extractable text.
func Bytes(tb testing.TB, opts Options, pages ...Page) []byte {
	tb.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("fixture", false)
	if opts.UserPassword != "" || opts.Encrypt {
		doc.SetProtection(gofpdf.CnProtectPrint, opts.UserPassword, "owner-secret")
	}
	if len(pages) == 0 {
		doc.AddPage()
	}
	for _, page := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		for _, line := range page {
			// Trailing space keeps words apart when lines are concatenated.
			doc.Cell(0, 6, strings.TrimSpace(line)+" ")
			doc.Ln(8)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		tb.Fatalf("render fixture pdf: %v", err)
	}
	return buf.Bytes()
}

// Write renders pages to path, creating parent directories.
func Write(tb testing.TB, path string, opts Options, pages ...Page) {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, Bytes(tb, opts, pages...), 0o644); err != nil {
		tb.Fatalf("write fixture pdf: %v", err)
	}
}

// Text is a one-page document with a single line.
func Text(text string) Page {
	return Page{text}
}
