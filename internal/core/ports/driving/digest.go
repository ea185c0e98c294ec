package driving

import (
	"context"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// DigestRequest describes one run over an input directory.
type DigestRequest struct {
	// InputDir is the directory searched for PDFs.
	InputDir string

	// Settings control summarization and output locations.
	Settings domain.Settings
}

// DigestService merges the PDFs of a directory and records their summaries.
type DigestService interface {
	// Run processes InputDir once. Per-file failures are reported in the
	// returned report, not as errors. The error is non-nil for run-fatal
	// failures and for domain.ErrNoFilesSucceeded; the report is returned
	// whenever discovery succeeded.
	Run(ctx context.Context, req DigestRequest) (*domain.RunReport, error)
}

// WatchService re-runs the digest whenever the input directory changes.
type WatchService interface {
	// Watch runs once immediately, then again after each batch of changes,
	// calling onRun after every run. It returns when ctx is cancelled.
	Watch(ctx context.Context, req DigestRequest, onRun func(*domain.RunReport, error)) error
}
