package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
)

// Ensure the index types implement the interfaces.
var (
	_ driven.IndexStore        = (*IndexStore)(nil)
	_ driven.IndexStoreFactory = (*IndexStores)(nil)
	_ driven.DigestWriter      = (*DigestWriter)(nil)
)

// IndexStore is an in-memory summary index.
type IndexStore struct {
	mu        sync.RWMutex
	path      string
	records   []domain.SummaryRecord
	appendErr error
	writes    int
}

// NewIndexStore creates an empty index reporting path as its location.
func NewIndexStore(path string) *IndexStore {
	return &IndexStore{path: path}
}

// FailAppends makes every following Append fail with ErrIndexWriteFailed
// wrapping err. Stored records are left as they were.
func (s *IndexStore) FailAppends(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendErr = err
}

// Load returns a copy of all records.
func (s *IndexStore) Load(_ context.Context) ([]domain.SummaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SummaryRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Append applies policy and stores the result.
func (s *IndexStore) Append(_ context.Context, records []domain.SummaryRecord, policy domain.IndexPolicy) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrIndexWriteFailed, s.appendErr)
	}
	s.records = domain.ApplyPolicy(s.records, records, policy)
	s.writes++
	return len(s.records), nil
}

// Path returns the configured location.
func (s *IndexStore) Path() string {
	return s.path
}

// Writes returns how many times the index was replaced.
func (s *IndexStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// IndexStores hands out one IndexStore per path and keeps them, so
// successive runs against the same path see earlier records.
type IndexStores struct {
	mu     sync.Mutex
	stores map[string]*IndexStore
}

// NewIndexStores creates an empty factory.
func NewIndexStores() *IndexStores {
	return &IndexStores{stores: make(map[string]*IndexStore)}
}

// IndexStore returns the store for path, creating it on first use.
func (f *IndexStores) IndexStore(path string) driven.IndexStore {
	return f.Get(path)
}

// Get is IndexStore with the concrete type, for test assertions.
func (f *IndexStores) Get(path string) *IndexStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[path]
	if !ok {
		s = NewIndexStore(path)
		f.stores[path] = s
	}
	return s
}

// DigestWriter records the digests it was asked to write.
type DigestWriter struct {
	mu      sync.Mutex
	digests map[string][]domain.SummaryRecord
	err     error
}

// NewDigestWriter creates an empty digest recorder.
func NewDigestWriter() *DigestWriter {
	return &DigestWriter{digests: make(map[string][]domain.SummaryRecord)}
}

// Fail makes every following write return err.
func (w *DigestWriter) Fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

// WriteDigest stores records under path.
func (w *DigestWriter) WriteDigest(_ context.Context, path string, records []domain.SummaryRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.digests[path] = append([]domain.SummaryRecord(nil), records...)
	return nil
}

// Digest returns the records written to path and whether it was written.
func (w *DigestWriter) Digest(path string) ([]domain.SummaryRecord, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	records, ok := w.digests[path]
	return records, ok
}
