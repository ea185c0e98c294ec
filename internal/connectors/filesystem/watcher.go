package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DirectoryWatcher = (*Watcher)(nil)

// Watcher reports PDF changes under a directory using fsnotify.
type Watcher struct {
	mu     sync.Mutex
	closed bool
	active []*fsnotify.Watcher
}

// NewWatcher creates a watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch emits the path of every created, written, removed or renamed PDF
// under root. New subdirectories are followed when recursive is set.
// The channel closes when ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, root string, recursive bool) (<-chan string, error) {
	abs, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, fmt.Errorf("watcher is closed")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w.active = append(w.active, fsw)
	w.mu.Unlock()

	if err := addTree(fsw, abs, recursive); err != nil {
		fsw.Close()
		return nil, err
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				path, ok := handleFsEvent(fsw, abs, recursive, event)
				if !ok {
					continue
				}
				select {
				case changes <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	return changes, nil
}

// Close stops every active watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	for _, fsw := range w.active {
		_ = fsw.Close()
	}
	w.active = nil
	return nil
}

// addTree watches dir and, when recursive, every visible subdirectory.
func addTree(fsw *fsnotify.Watcher, dir string, recursive bool) error {
	if !recursive {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// handleFsEvent filters an fsnotify event down to a changed PDF path.
// Newly created directories are added to the watch when recursive.
func handleFsEvent(fsw *fsnotify.Watcher, root string, recursive bool, event fsnotify.Event) (string, bool) {
	rel, err := filepath.Rel(root, event.Name)
	if err != nil || isHidden(rel) {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if recursive && fsw != nil {
				if err := addTree(fsw, event.Name, true); err != nil {
					logger.Warn("watch new directory %s: %v", event.Name, err)
				}
			}
			return "", false
		}
	}

	if !IsPDF(event.Name) {
		return "", false
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return event.Name, true
	}
	return "", false
}
