package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
)

// fakeExtractor treats the file content as "text" or as a marker:
// "locked:" and "broken:" fail, "sealed:" decrypts to "opened:".
type fakeExtractor struct{}

func (fakeExtractor) Extract(_ context.Context, r io.ReaderAt, size int64) (*driven.Extraction, error) {
	buf := make([]byte, size)
	if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, err
	}
	content := string(buf)
	switch {
	case strings.HasPrefix(content, "locked:"):
		return nil, fmt.Errorf("%w: needs a password", domain.ErrDecryptionFailed)
	case strings.HasPrefix(content, "broken:"):
		return nil, fmt.Errorf("%w: bad xref", domain.ErrParseFailed)
	case strings.HasPrefix(content, "sealed:"):
		text := strings.TrimPrefix(content, "sealed:")
		return &driven.Extraction{Text: text, Pages: 1, Encrypted: true, Content: []byte("opened:" + text)}, nil
	}
	return &driven.Extraction{Text: content, Pages: 1}, nil
}

// fakeMerger records merges. Every document has one page.
type fakeMerger struct {
	mu        sync.Mutex
	titles    []string
	contents  []string
	dest      string
	merges    int
	commits   int
	discards  int
	mergeErr  error
	commitErr error
}

func (m *fakeMerger) Inspect(_ context.Context, _ io.ReadSeeker) (int, error) {
	return 1, nil
}

func (m *fakeMerger) Merge(_ context.Context, parts []driven.MergePart, dest string) ([]int, driven.StagedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mergeErr != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrMergeWriteFailed, m.mergeErr)
	}
	m.merges++
	m.dest = dest
	m.titles = nil
	m.contents = nil
	first := make([]int, len(parts))
	for i, p := range parts {
		m.titles = append(m.titles, p.Title)
		data, _ := io.ReadAll(p.Content)
		m.contents = append(m.contents, string(data))
		first[i] = i + 1
	}
	return first, fakeStaged{m}, nil
}

// fakeStaged counts how a merge was settled.
type fakeStaged struct{ m *fakeMerger }

func (s fakeStaged) Commit() error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.commitErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrMergeWriteFailed, s.m.commitErr)
	}
	s.m.commits++
	return nil
}

func (s fakeStaged) Discard() error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.discards++
	return nil
}

// fakePipeline summarises with the first Sentences words, or falls back
// on empty text.
type fakePipeline struct{}

func (fakePipeline) Run(_ context.Context, req driven.SummaryRequest) (driven.Tokenization, driven.Summary) {
	words := strings.Fields(req.Text)
	tok := driven.Tokenization{Sentences: words, Language: "en", Status: domain.StageSucceeded}
	if len(words) == 0 {
		return tok, driven.Summary{Method: domain.MethodFallback, Cause: domain.ErrSummarizationFailed}
	}
	n := min(req.Sentences, len(words))
	return tok, driven.Summary{
		Text:      strings.Join(words[:n], " "),
		Sentences: words[:n],
		Method:    domain.MethodTextRank,
	}
}

// recordingProgress captures progress callbacks.
type recordingProgress struct {
	started  int
	steps    []string
	finished *domain.RunReport
}

func (p *recordingProgress) Start(total int) { p.started = total }

func (p *recordingProgress) Step(o domain.FileOutcome) { p.steps = append(p.steps, o.RelPath) }

func (p *recordingProgress) Finish(r *domain.RunReport) { p.finished = r }
