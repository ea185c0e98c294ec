package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure DigestService implements the interface.
var _ driving.DigestService = (*DigestService)(nil)

// DigestService merges the PDFs of a directory into one bookmarked
// document and appends a summary record per merged file to the index.
type DigestService struct {
	source    driven.FileSource
	extractor driven.TextExtractor
	merger    driven.DocumentMerger
	pipeline  driven.SummaryPipeline
	indexes   driven.IndexStoreFactory

	digest   driven.DigestWriter
	history  driven.RunHistoryStore
	progress driven.ProgressReporter

	now   func() time.Time
	newID func() string
}

// DigestOption configures optional collaborators.
type DigestOption func(*DigestService)

// WithDigestWriter enables the plain-text digest.
func WithDigestWriter(w driven.DigestWriter) DigestOption {
	return func(s *DigestService) { s.digest = w }
}

// WithHistory records every run in h.
func WithHistory(h driven.RunHistoryStore) DigestOption {
	return func(s *DigestService) { s.history = h }
}

// WithProgress reports per-file progress to p.
func WithProgress(p driven.ProgressReporter) DigestOption {
	return func(s *DigestService) { s.progress = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) DigestOption {
	return func(s *DigestService) { s.now = now }
}

// WithRunIDs replaces the run id generator.
func WithRunIDs(newID func() string) DigestOption {
	return func(s *DigestService) { s.newID = newID }
}

// NewDigestService creates a digest service.
func NewDigestService(
	source driven.FileSource,
	extractor driven.TextExtractor,
	merger driven.DocumentMerger,
	pipeline driven.SummaryPipeline,
	indexes driven.IndexStoreFactory,
	opts ...DigestOption,
) *DigestService {
	s := &DigestService{
		source:    source,
		extractor: extractor,
		merger:    merger,
		pipeline:  pipeline,
		indexes:   indexes,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fileResult is the per-file product of the processing phase.
type fileResult struct {
	outcome domain.FileOutcome
	record  domain.SummaryRecord
	content []byte
}

// Run processes req.InputDir once.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *DigestService) Run(ctx context.Context, req driving.DigestRequest) (*domain.RunReport, error) {
	settings := req.Settings
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	paths, err := ResolvePaths(settings)
	if err != nil {
		return nil, err
	}

	// 1. Discover and order candidates
	discovered, err := s.source.Discover(ctx, req.InputDir, settings.Recursive)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	files := make([]domain.SourceFile, 0, len(discovered))
	for _, f := range discovered {
		// A previous merged output inside the input tree is not an input.
		if f.Path == paths.Output {
			logger.Debug("ignoring previous output %s", f.RelPath)
			continue
		}
		files = append(files, f)
	}
	domain.SortSourceFiles(files)

	report := &domain.RunReport{
		RunID:      s.newID(),
		StartedAt:  s.now(),
		InputDir:   req.InputDir,
		OutputPath: paths.Output,
		IndexPath:  paths.Index,
	}
	logger.Section("Run " + report.RunID)
	logger.Info("found %d PDF(s) in %s", len(files), req.InputDir)

	if len(files) == 0 {
		s.finish(ctx, report)
		return report, fmt.Errorf("%w: no PDF files in %s", domain.ErrNoFilesSucceeded, req.InputDir)
	}

	// 2. Extract and summarise each file
	results := s.processAll(ctx, files, settings, report)
	report.Outcomes = outcomesOf(results)
	if err := ctx.Err(); err != nil {
		// A cancelled run leaves no artifacts, history included.
		if s.progress != nil {
			s.progress.Finish(report)
		}
		return report, err
	}

	var merged []*fileResult
	for i := range results {
		if results[i].outcome.Status == domain.OutcomeMerged {
			merged = append(merged, &results[i])
		}
	}
	if len(merged) == 0 {
		s.finish(ctx, report)
		return report, fmt.Errorf("%w: all %d file(s) were skipped", domain.ErrNoFilesSucceeded, len(files))
	}

	// 3. Merge once, in natural order
	parts := make([]driven.MergePart, len(merged))
	for i, r := range merged {
		parts[i] = driven.MergePart{Title: r.record.Name, Content: bytes.NewReader(r.content)}
	}
	firstPages, staged, err := s.merger.Merge(ctx, parts, paths.Output)
	if err != nil {
		s.finish(ctx, report)
		return report, err
	}
	for i, r := range merged {
		r.outcome.FirstPage = firstPages[i]
		r.content = nil
		report.Records = append(report.Records, r.record)
	}
	report.Outcomes = outcomesOf(results)

	// 4. Persist the index, then move the merged PDF into place. A failed
	// index write leaves the previous PDF and index as they were.
	total, err := s.indexes.IndexStore(paths.Index).Append(ctx, report.Records, settings.IndexPolicy)
	if err != nil {
		if discardErr := staged.Discard(); discardErr != nil {
			logger.Warn("staged output not removed: %v", discardErr)
		}
		s.finish(ctx, report)
		return report, err
	}
	logger.Info("index %s now holds %d record(s)", paths.Index, total)

	if err := staged.Commit(); err != nil {
		s.finish(ctx, report)
		return report, err
	}
	logger.Info("merged %d file(s) into %s", len(merged), paths.Output)

	if settings.WriteDigest && s.digest != nil {
		if err := s.digest.WriteDigest(ctx, paths.Digest, report.Records); err != nil {
			logger.Warn("digest %s not written: %v", paths.Digest, err)
		}
	}

	s.finish(ctx, report)
	return report, nil
}

// processAll runs process for every file on settings.Workers goroutines.
// Results keep the order of files, and progress is reported in that order.
func (s *DigestService) processAll(
	ctx context.Context,
	files []domain.SourceFile,
	settings domain.Settings,
	report *domain.RunReport,
) []fileResult {
	results := make([]fileResult, len(files))
	done := make([]chan struct{}, len(files))
	for i := range done {
		done[i] = make(chan struct{})
	}

	jobs := make(chan int)
	workers := min(settings.Workers, len(files))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.process(ctx, files[i], settings, report)
				close(done[i])
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-ctx.Done():
				for ; i < len(files); i++ {
					results[i] = fileResult{outcome: skipped(files[i], ctx.Err())}
					close(done[i])
				}
				return
			}
		}
	}()

	if s.progress != nil {
		s.progress.Start(len(files))
	}
	for i := range files {
		<-done[i]
		if s.progress != nil {
			s.progress.Step(results[i].outcome)
		}
	}
	wg.Wait()
	return results
}

// process extracts, validates and summarises one file. Failures are
// recorded on the outcome; the run continues.
func (s *DigestService) process(
	ctx context.Context,
	file domain.SourceFile,
	settings domain.Settings,
	report *domain.RunReport,
) fileResult {
	if err := ctx.Err(); err != nil {
		return fileResult{outcome: skipped(file, err)}
	}

	content, err := s.read(ctx, file)
	if err != nil {
		logger.Warn("skipping %s: %v", file.RelPath, err)
		return fileResult{outcome: skipped(file, err)}
	}

	extraction, err := s.extractor.Extract(ctx, bytes.NewReader(content), int64(len(content)))
	if err != nil {
		logger.Warn("skipping %s: %v", file.RelPath, err)
		return fileResult{outcome: skipped(file, err)}
	}
	if extraction.Content != nil {
		// Merge the decrypted document, not the encrypted source.
		content = extraction.Content
	}
	pages, err := s.merger.Inspect(ctx, bytes.NewReader(content))
	if err != nil {
		logger.Warn("skipping %s: %v", file.RelPath, err)
		return fileResult{outcome: skipped(file, err)}
	}
	logger.File(file.RelPath, "extracted %d page(s), %d char(s), encrypted=%t",
		pages, utf8.RuneCountInString(extraction.Text), extraction.Encrypted)

	text := collapseWhitespace(extraction.Text)
	tok, summary := s.pipeline.Run(ctx, driven.SummaryRequest{
		Text:          text,
		Sentences:     settings.Sentences,
		MaxChars:      settings.MaxChars,
		FallbackChars: settings.FallbackChars,
	})

	summaryStatus := domain.StageSucceeded
	if summary.Method == domain.MethodFallback {
		summaryStatus = domain.StageFallback
		logger.File(file.RelPath, "fallback summary: %v", summary.Cause)
	}
	tokStatus := tok.Status
	if tokStatus == "" {
		tokStatus = domain.StageSucceeded
	}

	return fileResult{
		outcome: domain.FileOutcome{
			File:         file.Path,
			RelPath:      file.RelPath,
			Status:       domain.OutcomeMerged,
			Extraction:   domain.StageSucceeded,
			Tokenization: tokStatus,
			Summary:      summaryStatus,
			Language:     tok.Language,
			Pages:        pages,
		},
		record: domain.SummaryRecord{
			File:          file.Path,
			Name:          file.Name(),
			Summary:       summary.Text,
			SentenceCount: len(summary.Sentences),
			CharCount:     utf8.RuneCountInString(summary.Text),
			Language:      tok.Language,
			Method:        summary.Method,
			Pages:         pages,
			RunID:         report.RunID,
			CreatedAt:     s.now(),
		},
		content: content,
	}
}

// read loads the whole file. Extraction and merging both work from
// these bytes, so a file changing mid-run cannot diverge between them.
func (s *DigestService) read(ctx context.Context, file domain.SourceFile) ([]byte, error) {
	h, err := s.source.Open(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer h.Close()

	content, err := io.ReadAll(h)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return content, nil
}

// finish stamps the report, stores it in history and closes progress.
// History failures are logged only.
func (s *DigestService) finish(ctx context.Context, report *domain.RunReport) {
	report.FinishedAt = s.now()
	if s.history != nil {
		if err := s.history.Save(ctx, report); err != nil {
			logger.Warn("run history not saved: %v", err)
		}
	}
	if s.progress != nil {
		s.progress.Finish(report)
	}
}

func outcomesOf(results []fileResult) []domain.FileOutcome {
	outcomes := make([]domain.FileOutcome, len(results))
	for i, r := range results {
		outcomes[i] = r.outcome
	}
	return outcomes
}

// skipped builds the outcome of a file excluded from the run. Files that
// never ran because the run was cancelled are skipped, not failed.
func skipped(file domain.SourceFile, err error) domain.FileOutcome {
	extraction := domain.StageFailed
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		extraction = domain.StageSkipped
	}
	return domain.FileOutcome{
		File:         file.Path,
		RelPath:      file.RelPath,
		Status:       domain.OutcomeSkipped,
		Err:          err,
		Extraction:   extraction,
		Tokenization: domain.StageSkipped,
		Summary:      domain.StageSkipped,
	}
}
