package jsonindex

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/custodia-labs/digestpdf/internal/atomicfile"
	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
)

// Ensure DigestWriter implements the interface.
var _ driven.DigestWriter = (*DigestWriter)(nil)

// DigestWriter writes the plain-text digest: for each record, the file
// name without extension followed by "- " and the summary.
type DigestWriter struct {
	commit atomicfile.RenameFunc
}

// NewDigestWriter creates a digest writer.
func NewDigestWriter() *DigestWriter {
	return &DigestWriter{commit: os.Rename}
}

// WriteDigest atomically replaces path with the digest of records.
func (d *DigestWriter) WriteDigest(ctx context.Context, dest string, records []domain.SummaryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return atomicfile.Write(dest, d.commit, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		for _, rec := range records {
			if _, err := fmt.Fprintf(bw, "%s\n- %s\n\n", stem(rec.Name), rec.Summary); err != nil {
				return err
			}
		}
		return bw.Flush()
	})
}

// stem strips the extension from a base name: "report1.pdf" -> "report1".
func stem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
