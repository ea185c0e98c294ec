package driving

import (
	"context"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// IndexService reads the summary index.
type IndexService interface {
	// List returns records from the index at path whose identity contains
	// filter. An empty filter returns every record.
	List(ctx context.Context, path, filter string) ([]domain.SummaryRecord, error)
}

// HistoryService reads past run reports.
type HistoryService interface {
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunReport, error)

	// Show returns one run with its per-file outcomes.
	Show(ctx context.Context, runID string) (*domain.RunReport, error)
}
