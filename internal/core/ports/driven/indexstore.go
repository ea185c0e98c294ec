package driven

import (
	"context"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// IndexStore is the persisted JSON array of summary records.
type IndexStore interface {
	// Load returns all records. A missing index is an empty slice.
	Load(ctx context.Context) ([]domain.SummaryRecord, error)

	// Append adds records according to policy and atomically replaces the
	// persisted index. It returns the resulting record count. Errors wrap
	// domain.ErrIndexWriteFailed and leave the previous index intact.
	Append(ctx context.Context, records []domain.SummaryRecord, policy domain.IndexPolicy) (int, error)

	// Path returns the index file location.
	Path() string
}

// IndexStoreFactory opens the index stored at a path.
type IndexStoreFactory interface {
	IndexStore(path string) IndexStore
}

// DigestWriter writes the human-readable digest of a run's records.
type DigestWriter interface {
	WriteDigest(ctx context.Context, path string, records []domain.SummaryRecord) error
}
