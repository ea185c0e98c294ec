package memory

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
)

// Ensure FileSource implements the interface.
var _ driven.FileSource = (*FileSource)(nil)

// FileSource serves PDFs from memory. Paths are slash-separated and
// relative to the root passed to Discover.
type FileSource struct {
	mu    sync.RWMutex
	files map[string][]byte
	opens int
}

// NewFileSource creates an empty source.
func NewFileSource() *FileSource {
	return &FileSource{files: make(map[string][]byte)}
}

// Add stores content at root/rel.
func (s *FileSource) Add(root, rel string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path.Join(root, rel)] = content
}

// Opens returns how many handles were opened.
func (s *FileSource) Opens() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opens
}

// Discover lists stored files under root. Files in subdirectories are
// included only when recursive is set. Order follows map iteration.
func (s *FileSource) Discover(ctx context.Context, root string, recursive bool) ([]domain.SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := strings.TrimSuffix(root, "/") + "/"
	var files []domain.SourceFile //nolint:prealloc // filtered
	found := false
	for p, content := range s.files {
		rel, ok := strings.CutPrefix(p, prefix)
		if !ok {
			continue
		}
		found = true
		if !recursive && strings.Contains(rel, "/") {
			continue
		}
		files = append(files, domain.NewSourceFile(p, rel, int64(len(content))))
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, root)
	}
	return files, nil
}

// Open returns a handle over the stored bytes.
func (s *FileSource) Open(_ context.Context, file domain.SourceFile) (driven.SourceHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[file.Path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, file.Path)
	}
	s.opens++
	return nopCloser{bytes.NewReader(content)}, nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
