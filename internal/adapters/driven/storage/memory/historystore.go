package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.RunHistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.RunHistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	runs    map[string]domain.RunReport
	saveErr error
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{runs: make(map[string]domain.RunReport)}
}

// FailSaves makes every following Save return err.
func (s *HistoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Save stores a copy of report.
func (s *HistoryStore) Save(_ context.Context, report *domain.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.runs[report.RunID] = *report
	return nil
}

// List returns runs newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.RunReport, 0, len(s.runs))
	for _, r := range s.runs {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartedAt.Equal(result[j].StartedAt) {
			return result[i].StartedAt.After(result[j].StartedAt)
		}
		return result[i].RunID < result[j].RunID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Get retrieves a run by ID.
func (s *HistoryStore) Get(_ context.Context, runID string) (*domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}
