package domain

import "time"

// StageStatus is the explicit result of one pipeline stage.
type StageStatus string

const (
	// StageSucceeded means the stage produced its primary result.
	StageSucceeded StageStatus = "succeeded"

	// StageFallback means the stage recovered with its fallback path.
	StageFallback StageStatus = "fallback"

	// StageFailed means the stage failed and the file was skipped.
	StageFailed StageStatus = "failed"

	// StageSkipped means the stage did not run.
	StageSkipped StageStatus = "skipped"
)

// OutcomeStatus is the disposition of a source file within a run.
type OutcomeStatus string

const (
	// OutcomeMerged means the file was merged and summarised.
	OutcomeMerged OutcomeStatus = "merged"

	// OutcomeSkipped means the file was excluded from merge and index.
	OutcomeSkipped OutcomeStatus = "skipped"
)

// FileOutcome is the structured per-file result of a run.
type FileOutcome struct {
	// File is the absolute source path.
	File string

	// RelPath is the path relative to the input root.
	RelPath string

	// Status is merged or skipped.
	Status OutcomeStatus

	// Err is the per-file error for skipped files.
	Err error

	// Extraction, Tokenization and Summary report each stage.
	Extraction   StageStatus
	Tokenization StageStatus
	Summary      StageStatus

	// Language is the detected language tag, if any.
	Language string

	// Pages is the number of pages merged.
	Pages int

	// FirstPage is the 1-based page of the bookmark in the merged output.
	FirstPage int
}

// Reason returns a printable reason for a skipped file.
func (o FileOutcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// RunReport aggregates the outcome of a run.
type RunReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	InputDir   string
	OutputPath string
	IndexPath  string

	// Outcomes are in natural-sort order.
	Outcomes []FileOutcome

	// Records are the summary records appended by this run.
	Records []SummaryRecord
}

// Total returns the number of candidate files.
func (r *RunReport) Total() int {
	return len(r.Outcomes)
}

// Succeeded returns the number of merged files.
func (r *RunReport) Succeeded() int {
	return r.count(OutcomeMerged)
}

// Skipped returns the number of skipped files.
func (r *RunReport) Skipped() int {
	return r.count(OutcomeSkipped)
}

// Fallbacks returns the number of merged files summarised by the
// fallback excerpt.
func (r *RunReport) Fallbacks() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeMerged && o.Summary == StageFallback {
			n++
		}
	}
	return n
}

// Duration returns how long the run took.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *RunReport) count(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
