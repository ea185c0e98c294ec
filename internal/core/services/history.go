package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
)

// DefaultHistoryLimit is the number of runs listed when no limit is given.
const DefaultHistoryLimit = 20

// ErrHistoryUnavailable is returned when no history store is configured.
var ErrHistoryUnavailable = errors.New("run history is not available")

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads past runs.
type HistoryService struct {
	store driven.RunHistoryStore
}

// NewHistoryService creates a history service. store may be nil.
func NewHistoryService(store driven.RunHistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit runs, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunReport, error) {
	if s.store == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.List(ctx, limit)
}

// Show returns one run.
func (s *HistoryService) Show(ctx context.Context, runID string) (*domain.RunReport, error) {
	if s.store == nil {
		return nil, ErrHistoryUnavailable
	}
	return s.store.Get(ctx, runID)
}
