package merge

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/normalisers/pdf"
	"github.com/custodia-labs/digestpdf/internal/pdftest"
)

func part(t *testing.T, title string, pages ...pdftest.Page) driven.MergePart {
	t.Helper()
	return driven.MergePart{
		Title:   title,
		Content: bytes.NewReader(pdftest.Bytes(t, pdftest.Options{}, pages...)),
	}
}

func outline(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	bms, err := api.Bookmarks(f, New().config())
	require.NoError(t, err)
	titles := make([]string, len(bms))
	for i, bm := range bms {
		titles[i] = bm.Title
	}
	return titles
}

// mergeTo merges and commits, failing the test on any error.
func mergeTo(t *testing.T, m *Merger, parts []driven.MergePart, dest string) []int {
	t.Helper()
	first, staged, err := m.Merge(context.Background(), parts, dest)
	require.NoError(t, err)
	require.NoError(t, staged.Commit())
	return first
}

func TestMerger_Inspect(t *testing.T) {
	m := New()
	r := bytes.NewReader(pdftest.Bytes(t, pdftest.Options{}, pdftest.Text("one"), pdftest.Text("two")))

	n, err := m.Inspect(context.Background(), r)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMerger_Inspect_NotAPDF(t *testing.T) {
	_, err := New().Inspect(context.Background(), bytes.NewReader([]byte("plain text")))
	assert.ErrorIs(t, err, domain.ErrParseFailed)
}

func TestMerger_Inspect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Inspect(ctx, bytes.NewReader(pdftest.Bytes(t, pdftest.Options{})))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMerger_Merge(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "merged.pdf")
	parts := []driven.MergePart{
		part(t, "report1.pdf", pdftest.Text("first")),
		part(t, "report2.pdf", pdftest.Text("a"), pdftest.Text("b")),
		part(t, "report10.pdf", pdftest.Text("last")),
	}

	first := mergeTo(t, New(), parts, dest)

	assert.Equal(t, []int{1, 2, 4}, first)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	n, err := api.PageCount(f, New().config())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Equal(t, []string{"report1.pdf", "report2.pdf", "report10.pdf"}, outline(t, dest))
}

func TestMerger_Merge_SameInputTwiceGivesSameOutline(t *testing.T) {
	dir := t.TempDir()
	build := func() []driven.MergePart {
		return []driven.MergePart{
			part(t, "a.pdf", pdftest.Text("a")),
			part(t, "b.pdf", pdftest.Text("b")),
		}
	}

	first := filepath.Join(dir, "first.pdf")
	second := filepath.Join(dir, "second.pdf")
	mergeTo(t, New(), build(), first)
	mergeTo(t, New(), build(), second)

	assert.Equal(t, outline(t, first), outline(t, second))
}

func TestMerger_Merge_ReplacesExistingOutput(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "merged.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	mergeTo(t, New(), []driven.MergePart{part(t, "only.pdf", pdftest.Text("x"))}, dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestMerger_Merge_FailedRenameKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "merged.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("previous"), 0o644))

	m := New()
	m.rename = func(string, string) error { return errors.New("disk gone") }

	_, staged, err := m.Merge(context.Background(), []driven.MergePart{part(t, "x.pdf", pdftest.Text("x"))}, dest)
	require.NoError(t, err)
	err = staged.Commit()

	assert.ErrorIs(t, err, domain.ErrMergeWriteFailed)
	data, readErr := os.ReadFile(dest)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(data))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "temporary file should be removed")
}

func TestMerger_Merge_NoParts(t *testing.T) {
	_, _, err := New().Merge(context.Background(), nil, filepath.Join(t.TempDir(), "m.pdf"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMerger_Merge_BrokenPart(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "m.pdf")
	parts := []driven.MergePart{
		part(t, "ok.pdf", pdftest.Text("ok")),
		{Title: "broken.pdf", Content: bytes.NewReader([]byte("%PDF-1.4 garbage"))},
	}

	_, _, err := New().Merge(context.Background(), parts, dest)

	assert.ErrorIs(t, err, domain.ErrMergeWriteFailed)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMerger_Merge_StagedOutputLeavesPreviousUntilCommit(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "merged.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("previous"), 0o644))

	_, staged, err := New().Merge(context.Background(), []driven.MergePart{part(t, "x.pdf", pdftest.Text("x"))}, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	require.NoError(t, staged.Discard())
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staged file should be removed")
}

func TestMerger_Inspect_DecryptedOwnerOnlyDocument(t *testing.T) {
	src := pdftest.Bytes(t, pdftest.Options{Encrypt: true}, pdftest.Text("owner protected"))
	extraction, err := pdf.New().Extract(context.Background(), bytes.NewReader(src), int64(len(src)))
	require.NoError(t, err)
	require.NotNil(t, extraction.Content)

	n, err := New().Inspect(context.Background(), bytes.NewReader(extraction.Content))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	dest := filepath.Join(t.TempDir(), "merged.pdf")
	first := mergeTo(t, New(), []driven.MergePart{{Title: "owner.pdf", Content: bytes.NewReader(extraction.Content)}}, dest)
	assert.Equal(t, []int{1}, first)
	assert.Equal(t, []string{"owner.pdf"}, outline(t, dest))
}
