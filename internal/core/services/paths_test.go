package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

func TestResolvePaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name   string
		output string
		index  string
		want   RunPaths
	}{
		{
			name:   "bare file name goes under output",
			output: "merged.pdf",
			want: RunPaths{
				Output: filepath.Join(wd, "output", "merged.pdf"),
				Index:  filepath.Join(wd, "output", "summary_index.json"),
				Digest: filepath.Join(wd, "output", "summary.txt"),
			},
		},
		{
			name:   "explicit relative directory is kept",
			output: "out/all.pdf",
			want: RunPaths{
				Output: filepath.Join(wd, "out", "all.pdf"),
				Index:  filepath.Join(wd, "out", "summary_index.json"),
				Digest: filepath.Join(wd, "out", "summary.txt"),
			},
		},
		{
			name:   "dot-slash keeps the working directory",
			output: "./all.pdf",
			want: RunPaths{
				Output: filepath.Join(wd, "all.pdf"),
				Index:  filepath.Join(wd, "summary_index.json"),
				Digest: filepath.Join(wd, "summary.txt"),
			},
		},
		{
			name:   "custom index moves the digest",
			output: "/data/merged.pdf",
			index:  "/meta/idx.json",
			want: RunPaths{
				Output: "/data/merged.pdf",
				Index:  "/meta/idx.json",
				Digest: "/meta/summary.txt",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultSettings()
			s.OutputPath = tt.output
			s.IndexPath = tt.index

			got, err := ResolvePaths(s)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePaths_EmptyOutput(t *testing.T) {
	s := domain.DefaultSettings()
	s.OutputPath = " "

	_, err := ResolvePaths(s)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a\n\n b\t\tc  "))
	assert.Equal(t, "", collapseWhitespace(" \n\t "))
	assert.Equal(t, "한국어 문장", collapseWhitespace("한국어　 문장"))
}
