package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
	"github.com/custodia-labs/digestpdf/internal/pdftest"
)

func extract(t *testing.T, data []byte) (*driven.Extraction, error) {
	t.Helper()
	return New().Extract(context.Background(), bytes.NewReader(data), int64(len(data)))
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.TextExtractor = (*Extractor)(nil)
}

func TestExtract_PlainText(t *testing.T) {
	data := pdftest.Bytes(t, pdftest.Options{},
		pdftest.Text("Sentence one. Sentence two. Sentence three."))

	result, err := extract(t, data)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Pages)
	assert.False(t, result.Encrypted)
	assert.Nil(t, result.Content)
	assert.Contains(t, result.Text, "Sentence one.")
	assert.Contains(t, result.Text, "Sentence three.")
}

func TestExtract_PagesInOrderWithNewlineSeparator(t *testing.T) {
	data := pdftest.Bytes(t, pdftest.Options{},
		pdftest.Text("Alpha page."),
		pdftest.Text("Beta page."),
		pdftest.Text("Gamma page."))

	result, err := extract(t, data)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Pages)

	alpha := bytes.Index([]byte(result.Text), []byte("Alpha"))
	beta := bytes.Index([]byte(result.Text), []byte("Beta"))
	gamma := bytes.Index([]byte(result.Text), []byte("Gamma"))
	require.True(t, alpha >= 0 && beta >= 0 && gamma >= 0, "text: %q", result.Text)
	assert.Less(t, alpha, beta)
	assert.Less(t, beta, gamma)
	assert.Contains(t, result.Text[alpha:beta], "\n")
}

func TestExtract_NoTextIsNotAnError(t *testing.T) {
	data := pdftest.Bytes(t, pdftest.Options{})

	result, err := extract(t, data)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Pages)
	assert.Empty(t, bytes.TrimSpace([]byte(result.Text)))
}

func TestExtract_EncryptedWithEmptyUserPassword(t *testing.T) {
	data := pdftest.Bytes(t, pdftest.Options{Encrypt: true},
		pdftest.Text("Readable after decryption."))

	result, err := extract(t, data)

	require.NoError(t, err)
	assert.True(t, result.Encrypted)
	assert.Equal(t, 1, result.Pages)
	assert.Contains(t, result.Text, "Readable after decryption.")
}

func TestExtract_EncryptedReturnsDecryptedContent(t *testing.T) {
	data := pdftest.Bytes(t, pdftest.Options{Encrypt: true},
		pdftest.Text("First page."),
		pdftest.Text("Second page."))

	result, err := extract(t, data)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF-")))

	again, err := extract(t, result.Content)
	require.NoError(t, err)
	assert.False(t, again.Encrypted)
	assert.Nil(t, again.Content)
	assert.Equal(t, 2, again.Pages)
	assert.Contains(t, again.Text, "First page.")
	assert.Contains(t, again.Text, "Second page.")
}

func TestExtract_EncryptedWithUnknownPassword(t *testing.T) {
	data := pdftest.Bytes(t, pdftest.Options{UserPassword: "hunter2"},
		pdftest.Text("Secret."))

	result, err := extract(t, data)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecryptionFailed)
	assert.False(t, errors.Is(err, domain.ErrParseFailed))
	assert.True(t, domain.IsFileError(err))
}

func TestExtract_ParseFailures(t *testing.T) {
	valid := pdftest.Bytes(t, pdftest.Options{}, pdftest.Text("Truncated."))

	tests := []struct {
		name string
		data []byte
	}{
		{"not a pdf", []byte("this is plain text, not a PDF document")},
		{"empty", []byte{}},
		{"header only", []byte("%PDF-1.4\n")},
		{"truncated", valid[:len(valid)/3]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := extract(t, tt.data)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParseFailed)
			assert.True(t, domain.IsFileError(err))
		})
	}
}

func TestExtract_NilReader(t *testing.T) {
	result, err := New().Extract(context.Background(), nil, 10)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrParseFailed)
}

func TestExtract_CancelledContext(t *testing.T) {
	data := pdftest.Bytes(t, pdftest.Options{}, pdftest.Text("Page."))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Extract(ctx, bytes.NewReader(data), int64(len(data)))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"wrong password", fmt.Errorf("read: %w", pdfcpu.ErrWrongPassword), domain.ErrDecryptionFailed},
		{"unknown encryption", pdfcpu.ErrUnknownEncryption, domain.ErrDecryptionFailed},
		{"reader password", pdf.ErrInvalidPassword, domain.ErrDecryptionFailed},
		{"already classified", fmt.Errorf("%w: rewrite", domain.ErrDecryptionFailed), domain.ErrDecryptionFailed},
		{"mentions encryption only in text", errors.New("malformed PDF: encryption dictionary"), domain.ErrParseFailed},
		{"malformed", errors.New("malformed PDF: reading at offset 0"), domain.ErrParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsFileError(err))
		})
	}
}
