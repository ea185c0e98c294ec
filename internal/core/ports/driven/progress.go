package driven

import "github.com/custodia-labs/digestpdf/internal/core/domain"

// ProgressReporter receives per-file progress during a run.
// Calls arrive from the goroutine running the digest, in natural-sort order.
type ProgressReporter interface {
	Start(total int)
	Step(outcome domain.FileOutcome)
	Finish(report *domain.RunReport)
}
