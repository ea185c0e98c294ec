// Package atomicfile replaces files through a synced temporary sibling
// and a rename, so readers see the old or the new content and never a
// partial write.
package atomicfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RenameFunc moves a finished temporary file over its destination.
// os.Rename is used when nil.
type RenameFunc func(oldpath, newpath string) error

// Staged is a fully written temporary file that has not yet replaced
// its destination. Exactly one of Commit or Discard takes effect.
type Staged struct {
	tmp    string
	dest   string
	rename RenameFunc
	done   bool
}

// Stage writes through write into a temporary sibling of dest and syncs
// it. dest is not touched. The temporary file is removed on failure.
func Stage(dest string, rename RenameFunc, write func(io.Writer) error) (*Staged, error) {
	if rename == nil {
		rename = os.Rename
	}
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("write: %w", err)
	}
	if err := errors.Join(tmp.Sync(), tmp.Close()); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("flush temp file: %w", err)
	}
	return &Staged{tmp: tmpPath, dest: dest, rename: rename}, nil
}

// Commit renames the temporary file over the destination. On failure
// the temporary file is removed and the destination is unchanged.
func (s *Staged) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.rename(s.tmp, s.dest); err != nil {
		_ = os.Remove(s.tmp)
		return fmt.Errorf("replace %s: %w", s.dest, err)
	}
	return nil
}

// Discard removes the temporary file and leaves the destination as it
// was. Discard after Commit does nothing.
func (s *Staged) Discard() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := os.Remove(s.tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.tmp, err)
	}
	return nil
}

// Write stages and commits in one step.
func Write(dest string, rename RenameFunc, write func(io.Writer) error) error {
	staged, err := Stage(dest, rename, write)
	if err != nil {
		return err
	}
	return staged.Commit()
}
