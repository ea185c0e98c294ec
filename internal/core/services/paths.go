package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

// DefaultOutputDir holds outputs given as a bare file name.
const DefaultOutputDir = "output"

// RunPaths are the absolute artifact locations of a run.
type RunPaths struct {
	Output string
	Index  string
	Digest string
}

// ResolvePaths derives artifact locations from settings. A bare output
// file name is placed under DefaultOutputDir. The index defaults to the
// output directory and the digest always sits next to the index.
func ResolvePaths(s domain.Settings) (RunPaths, error) {
	out := strings.TrimSpace(s.OutputPath)
	if out == "" {
		return RunPaths{}, fmt.Errorf("%w: output path is required", domain.ErrInvalidInput)
	}
	if filepath.Dir(out) == "." && !strings.HasPrefix(out, "."+string(filepath.Separator)) {
		out = filepath.Join(DefaultOutputDir, out)
	}
	out, err := filepath.Abs(out)
	if err != nil {
		return RunPaths{}, fmt.Errorf("resolve output path: %w", err)
	}

	index := strings.TrimSpace(s.IndexPath)
	if index == "" {
		index = filepath.Join(filepath.Dir(out), domain.DefaultIndexName)
	}
	index, err = filepath.Abs(index)
	if err != nil {
		return RunPaths{}, fmt.Errorf("resolve index path: %w", err)
	}

	return RunPaths{
		Output: out,
		Index:  index,
		Digest: filepath.Join(filepath.Dir(index), domain.DefaultDigestName),
	}, nil
}
