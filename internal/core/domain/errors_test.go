package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrDecryptionFailed", ErrDecryptionFailed},
		{"ErrParseFailed", ErrParseFailed},
		{"ErrIndexWriteFailed", ErrIndexWriteFailed},
		{"ErrMergeWriteFailed", ErrMergeWriteFailed},
		{"ErrNoFilesSucceeded", ErrNoFilesSucceeded},
		{"ErrSummarizationFailed", ErrSummarizationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrDecryptionFailed, ErrParseFailed))
	assert.False(t, errors.Is(ErrIndexWriteFailed, ErrMergeWriteFailed))
}

func TestIsFileError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"decryption", ErrDecryptionFailed, true},
		{"wrapped decryption", fmt.Errorf("open locked.pdf: %w", ErrDecryptionFailed), true},
		{"parse", ErrParseFailed, true},
		{"wrapped parse", fmt.Errorf("read: %w", ErrParseFailed), true},
		{"index write is fatal", ErrIndexWriteFailed, false},
		{"merge write is fatal", ErrMergeWriteFailed, false},
		{"nil", nil, false},
		{"unrelated", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFileError(tt.err))
		})
	}
}
