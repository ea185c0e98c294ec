package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService reads summary indexes.
type IndexService struct {
	indexes driven.IndexStoreFactory
}

// NewIndexService creates an index service.
func NewIndexService(indexes driven.IndexStoreFactory) *IndexService {
	return &IndexService{indexes: indexes}
}

// List returns records whose file path contains filter, ignoring case.
func (s *IndexService) List(ctx context.Context, path, filter string) ([]domain.SummaryRecord, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: index path is required", domain.ErrInvalidInput)
	}

	records, err := s.indexes.IndexStore(path).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	if filter == "" {
		return records, nil
	}

	needle := strings.ToLower(filter)
	filtered := make([]domain.SummaryRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.File), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
