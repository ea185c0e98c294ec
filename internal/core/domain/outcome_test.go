package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunReport_Counts(t *testing.T) {
	report := &RunReport{
		Outcomes: []FileOutcome{
			{RelPath: "report1.pdf", Status: OutcomeMerged, Summary: StageSucceeded},
			{RelPath: "report10.pdf", Status: OutcomeMerged, Summary: StageFallback},
			{RelPath: "locked.pdf", Status: OutcomeSkipped, Err: ErrDecryptionFailed, Summary: StageSkipped},
		},
	}

	assert.Equal(t, 3, report.Total())
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Skipped())
	assert.Equal(t, 1, report.Fallbacks())
}

func TestRunReport_Duration(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	report := &RunReport{StartedAt: start}
	assert.Equal(t, time.Duration(0), report.Duration())

	report.FinishedAt = start.Add(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, report.Duration())
}

func TestFileOutcome_Reason(t *testing.T) {
	assert.Equal(t, "", FileOutcome{}.Reason())
	assert.Equal(t, "parse failed", FileOutcome{Err: ErrParseFailed}.Reason())
}

func TestSummaryMethod(t *testing.T) {
	assert.True(t, MethodTextRank.IsValid())
	assert.True(t, MethodFallback.IsValid())
	assert.False(t, SummaryMethod("abstractive").IsValid())
	assert.Equal(t, "textrank", MethodTextRank.String())
}
