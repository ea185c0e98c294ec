// Package filesystem discovers PDFs on the local filesystem and watches
// directories for changes to them.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// Source is the local filesystem FileSource.
type Source struct{}

// New creates a filesystem source.
func New() *Source {
	return &Source{}
}

// Discover walks root and returns every visible .pdf file, matched
// case-insensitively. Hidden files and directories are skipped.
func (s *Source) Discover(ctx context.Context, root string, recursive bool) ([]domain.SourceFile, error) {
	abs, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	var files []domain.SourceFile
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == abs {
				return walkErr
			}
			logger.Warn("skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == abs {
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if !recursive || isHidden(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(rel) || !IsPDF(path) || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			return nil
		}
		files = append(files, domain.NewSourceFile(path, filepath.ToSlash(rel), info.Size()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	logger.Debug("discovered %d PDF(s) under %s", len(files), abs)
	return files, nil
}

// Open opens file for reading.
func (s *Source) Open(_ context.Context, file domain.SourceFile) (driven.SourceHandle, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, file.Path)
		}
		return nil, err
	}
	return f, nil
}

// resolveRoot makes root absolute and checks it is a directory.
func resolveRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("%w: input directory is required", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("root path error: %w", err)
	}
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, root)
	}
	if err != nil {
		return "", fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}
	return abs, nil
}

// IsPDF reports whether path has a .pdf extension in any case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// isHidden reports whether any component of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
