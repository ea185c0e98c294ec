package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driving"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// DefaultDebounce is how long the watcher waits for changes to settle
// before re-running.
const DefaultDebounce = 500 * time.Millisecond

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService re-runs a digest when PDFs in the input directory change.
type WatchService struct {
	digest   driving.DigestService
	watcher  driven.DirectoryWatcher
	debounce time.Duration
}

// NewWatchService creates a watch service. A non-positive debounce uses
// DefaultDebounce.
func NewWatchService(digest driving.DigestService, watcher driven.DirectoryWatcher, debounce time.Duration) *WatchService {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &WatchService{digest: digest, watcher: watcher, debounce: debounce}
}

// Watch runs once, then again each time changes settle. Changes to the
// run's own merged output are ignored. It returns nil when ctx ends.
func (w *WatchService) Watch(ctx context.Context, req driving.DigestRequest, onRun func(*domain.RunReport, error)) error {
	paths, err := ResolvePaths(req.Settings)
	if err != nil {
		return err
	}

	changes, err := w.watcher.Watch(ctx, req.InputDir, req.Settings.Recursive)
	if err != nil {
		return fmt.Errorf("watch %s: %w", req.InputDir, err)
	}

	run := func() {
		report, err := w.digest.Run(ctx, req)
		if ctx.Err() != nil {
			return
		}
		if onRun != nil {
			onRun(report, err)
		}
	}
	run()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case path, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher stopped")
			}
			if path == paths.Output {
				continue
			}
			logger.Debug("change: %s", path)
			pending = true
			timer.Reset(w.debounce)
		case <-timer.C:
			if pending {
				pending = false
				run()
			}
		}
	}
}
