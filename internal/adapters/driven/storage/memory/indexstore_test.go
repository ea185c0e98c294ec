package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
)

func TestIndexStore_AppendAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewIndexStore("/out/summary_index.json")

	n, err := store.Append(ctx, []domain.SummaryRecord{{File: "/a"}}, domain.PolicyAppend)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.Append(ctx, []domain.SummaryRecord{{File: "/a"}}, domain.PolicyAppend)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.Append(ctx, []domain.SummaryRecord{{File: "/a", Summary: "new"}}, domain.PolicyReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "new", records[0].Summary)
	assert.Equal(t, 3, store.Writes())
	assert.Equal(t, "/out/summary_index.json", store.Path())
}

func TestIndexStore_FailAppends(t *testing.T) {
	ctx := context.Background()
	store := NewIndexStore("x")
	_, err := store.Append(ctx, []domain.SummaryRecord{{File: "/a"}}, domain.PolicyAppend)
	require.NoError(t, err)

	store.FailAppends(errors.New("disk full"))
	_, err = store.Append(ctx, []domain.SummaryRecord{{File: "/b"}}, domain.PolicyAppend)

	assert.ErrorIs(t, err, domain.ErrIndexWriteFailed)
	records, _ := store.Load(ctx)
	assert.Len(t, records, 1)
}

func TestIndexStores_SamePathSameStore(t *testing.T) {
	f := NewIndexStores()
	assert.Same(t, f.Get("/p"), f.IndexStore("/p"))
	assert.NotSame(t, f.Get("/p"), f.Get("/q"))
}

func TestDigestWriter(t *testing.T) {
	w := NewDigestWriter()
	require.NoError(t, w.WriteDigest(context.Background(), "/out/summary.txt", []domain.SummaryRecord{{Name: "a.pdf"}}))

	got, ok := w.Digest("/out/summary.txt")
	assert.True(t, ok)
	assert.Len(t, got, 1)

	_, ok = w.Digest("/elsewhere")
	assert.False(t, ok)
}

func TestHistoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, &domain.RunReport{RunID: "r1"}))
	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.RunID)

	runs, err := store.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestFileSource_Discover(t *testing.T) {
	ctx := context.Background()
	src := NewFileSource()
	src.Add("/in", "a.pdf", []byte("a"))
	src.Add("/in", "sub/b.pdf", []byte("bb"))

	flat, err := src.Discover(ctx, "/in", false)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, "a.pdf", flat[0].RelPath)

	all, err := src.Discover(ctx, "/in", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = src.Discover(ctx, "/missing", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileSource_Open(t *testing.T) {
	ctx := context.Background()
	src := NewFileSource()
	src.Add("/in", "a.pdf", []byte("abc"))

	files, err := src.Discover(ctx, "/in", false)
	require.NoError(t, err)

	h, err := src.Open(ctx, files[0])
	require.NoError(t, err)
	defer h.Close()

	buf := make([]byte, 3)
	_, err = h.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf))
	assert.Equal(t, 1, src.Opens())
}
