// Package jsonindex persists summary records as a JSON array on disk.
// Every write goes to a temporary file in the destination directory which
// is then renamed over the index, so readers see the old or the new array
// and never a partial one.
package jsonindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/custodia-labs/digestpdf/internal/atomicfile"
	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure the store types implement the interfaces.
var (
	_ driven.IndexStore        = (*Store)(nil)
	_ driven.IndexStoreFactory = Factory{}
)

// Store is the JSON index at a fixed path.
type Store struct {
	mu   sync.Mutex
	path string

	// commit is os.Rename; tests replace it to simulate a crash between
	// writing the temporary file and replacing the index.
	commit atomicfile.RenameFunc
}

// New creates a store for the index at path. Nothing is read or written
// until Load or Append.
func New(path string) *Store {
	return &Store{path: path, commit: os.Rename}
}

// Factory opens JSON index stores.
type Factory struct{}

// IndexStore returns a Store for path.
func (Factory) IndexStore(path string) driven.IndexStore {
	return New(path)
}

// Path returns the index file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns all records. A missing or empty file is an empty index.
func (s *Store) Load(ctx context.Context) ([]domain.SummaryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) ([]domain.SummaryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.SummaryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.SummaryRecord{}, nil
	}

	var records []domain.SummaryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", s.path, err)
	}
	if records == nil {
		records = []domain.SummaryRecord{}
	}
	return records, nil
}

// Append loads the index, applies policy in memory and atomically
// replaces the file. An unreadable index is never overwritten.
func (s *Store) Append(ctx context.Context, records []domain.SummaryRecord, policy domain.IndexPolicy) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadLocked(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrIndexWriteFailed, err)
	}

	merged := domain.ApplyPolicy(existing, records, policy)
	err = atomicfile.Write(s.path, s.commit, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(merged)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrIndexWriteFailed, err)
	}

	logger.Debug("index %s: %d existing + %d new -> %d (%s)",
		s.path, len(existing), len(records), len(merged), policy)
	return len(merged), nil
}
