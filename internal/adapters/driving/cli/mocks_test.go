package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/digestpdf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
	"github.com/custodia-labs/digestpdf/internal/core/services"
)

// mockDigestService implements driving.DigestService for testing.
type mockDigestService struct {
	req    driving.DigestRequest
	report *domain.RunReport
	err    error
}

func (m *mockDigestService) Run(_ context.Context, req driving.DigestRequest) (*domain.RunReport, error) {
	m.req = req
	return m.report, m.err
}

// mockWatchService runs onRun once per queued result.
type mockWatchService struct {
	req     driving.DigestRequest
	reports []*domain.RunReport
	errs    []error
	err     error
}

func (m *mockWatchService) Watch(_ context.Context, req driving.DigestRequest, onRun func(*domain.RunReport, error)) error {
	m.req = req
	for i, r := range m.reports {
		onRun(r, m.errs[i])
	}
	return m.err
}

// mockIndexService implements driving.IndexService for testing.
type mockIndexService struct {
	path    string
	filter  string
	records []domain.SummaryRecord
	err     error
}

func (m *mockIndexService) List(_ context.Context, path, filter string) ([]domain.SummaryRecord, error) {
	m.path = path
	m.filter = filter
	return m.records, m.err
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	limit int
	runs  []domain.RunReport
	err   error
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.RunReport, error) {
	m.limit = limit
	return m.runs, m.err
}

func (m *mockHistoryService) Show(_ context.Context, runID string) (*domain.RunReport, error) {
	for i := range m.runs {
		if m.runs[i].RunID == runID {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// sampleReport is the two-merged, one-skipped run.
func sampleReport() *domain.RunReport {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.RunReport{
		RunID:      "run-1",
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
		InputDir:   "/in",
		OutputPath: "/out/merged.pdf",
		IndexPath:  "/out/summary_index.json",
		Outcomes: []domain.FileOutcome{
			{File: "/in/report1.pdf", RelPath: "report1.pdf", Status: domain.OutcomeMerged,
				Summary: domain.StageSucceeded, Pages: 1, FirstPage: 1},
			{File: "/in/report10.pdf", RelPath: "report10.pdf", Status: domain.OutcomeMerged,
				Summary: domain.StageFallback, Pages: 3, FirstPage: 2},
			{File: "/in/locked.pdf", RelPath: "locked.pdf", Status: domain.OutcomeSkipped,
				Err: domain.ErrDecryptionFailed},
		},
		Records: []domain.SummaryRecord{{File: "/in/report1.pdf"}, {File: "/in/report10.pdf"}},
	}
}

// installServices swaps in test services and settings backed by memory.
func installServices(t *testing.T, s *Services) *memory.ConfigStore {
	t.Helper()
	store := memory.NewConfigStore()
	if s.Settings == nil {
		s.Settings = services.NewSettingsService(store)
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
	return store
}

// execute runs the root command with args and returns its output.
// Flag values from earlier runs are reset first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
