package domain

import (
	"path"
	"slices"
	"strings"
)

// SourceFile is a PDF discovered under an input directory.
// It is read-only once created and lives for a single run.
type SourceFile struct {
	// Path is the absolute filesystem path.
	Path string

	// RelPath is the slash-separated path relative to the input root.
	// Ordering is defined on RelPath so siblings from different
	// directories keep their relative order.
	RelPath string

	// Size is the raw byte length.
	Size int64

	key NaturalKey
}

// NewSourceFile creates a SourceFile and derives its natural-sort key.
func NewSourceFile(absPath, relPath string, size int64) SourceFile {
	rel := strings.ReplaceAll(relPath, "\\", "/")
	return SourceFile{
		Path:    absPath,
		RelPath: rel,
		Size:    size,
		key:     NewNaturalKey(rel),
	}
}

// Name returns the base file name, used as the bookmark title.
func (f SourceFile) Name() string {
	return path.Base(f.RelPath)
}

// Key returns the natural-sort key.
func (f SourceFile) Key() NaturalKey {
	return f.key
}

// SortSourceFiles orders files by the natural-sort key of their
// relative path. Discovery order is never trusted.
func SortSourceFiles(files []SourceFile) {
	slices.SortStableFunc(files, func(a, b SourceFile) int {
		return a.key.Compare(b.key)
	})
}
