package driven

import (
	"context"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// RunHistoryStore persists run reports.
type RunHistoryStore interface {
	// Save stores a finished run, including per-file outcomes.
	Save(ctx context.Context, report *domain.RunReport) error

	// List returns up to limit runs, most recent first.
	List(ctx context.Context, limit int) ([]domain.RunReport, error)

	// Get returns a run with its outcomes.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, runID string) (*domain.RunReport, error)
}
