package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/services"
)

func TestHistoryCmd_ListsRuns(t *testing.T) {
	history := &mockHistoryService{runs: []domain.RunReport{*sampleReport()}}
	installServices(t, &Services{History: history})

	out, err := execute(t, "history", "--limit", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, history.limit)
	assert.Contains(t, out, "run-1  2026-03-01 09:00:00  2/3 merged  /in")
}

func TestHistoryCmd_DefaultLimit(t *testing.T) {
	history := &mockHistoryService{}
	installServices(t, &Services{History: history})

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Equal(t, services.DefaultHistoryLimit, history.limit)
	assert.Contains(t, out, "No runs recorded.")
}

func TestHistoryCmd_ShowsRun(t *testing.T) {
	installServices(t, &Services{History: &mockHistoryService{runs: []domain.RunReport{*sampleReport()}}})

	out, err := execute(t, "history", "run-1")

	require.NoError(t, err)
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Duration: 1.5s")
	assert.Contains(t, out, "locked.pdf")
}

func TestHistoryCmd_UnknownRun(t *testing.T) {
	installServices(t, &Services{History: &mockHistoryService{}})

	_, err := execute(t, "history", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryCmd_ServiceNotConfigured(t *testing.T) {
	installServices(t, &Services{})

	_, err := execute(t, "history")

	assert.EqualError(t, err, "history service not configured")
}
