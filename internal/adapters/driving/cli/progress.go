package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
)

// Ensure ProgressReporter implements the interface.
var _ driven.ProgressReporter = (*ProgressReporter)(nil)

// ProgressReporter draws a single-line progress bar. When the writer is
// not interactive it stays silent and the report printed by the command
// carries the result.
type ProgressReporter struct {
	mu          sync.Mutex
	w           io.Writer
	interactive bool
	bar         progress.Model
	total       int
	done        int
}

// NewProgressReporter creates a reporter writing to w.
func NewProgressReporter(w io.Writer, interactive bool) *ProgressReporter {
	return &ProgressReporter{
		w:           w,
		interactive: interactive,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// StderrProgress returns a reporter on stderr, drawing only when stderr
// is a terminal.
func StderrProgress() *ProgressReporter {
	return NewProgressReporter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

// Start resets the bar for total files.
func (p *ProgressReporter) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.done = 0
	p.draw("")
}

// Step advances the bar by one file.
func (p *ProgressReporter) Step(outcome domain.FileOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.draw(filepath.Base(outcome.File))
}

// Finish ends the progress line.
func (p *ProgressReporter) Finish(*domain.RunReport) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive && p.total > 0 {
		fmt.Fprint(p.w, "\r\033[K")
	}
}

func (p *ProgressReporter) draw(name string) {
	if !p.interactive || p.total == 0 {
		return
	}
	percent := float64(p.done) / float64(p.total)
	fmt.Fprintf(p.w, "\r\033[K%s %d/%d %s", p.bar.ViewAs(percent), p.done, p.total, name)
}
