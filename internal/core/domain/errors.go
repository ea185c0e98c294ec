package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Per-file errors. A run continues past these; the file is
	// excluded from the merged document and from the index.

	// ErrDecryptionFailed indicates an encrypted PDF could not be opened
	// with the empty password.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrParseFailed indicates a PDF is structurally unreadable.
	ErrParseFailed = errors.New("parse failed")

	// Run-fatal errors. Prior artifacts on disk are left untouched.

	// ErrIndexWriteFailed indicates the summary index could not be replaced.
	ErrIndexWriteFailed = errors.New("index write failed")

	// ErrMergeWriteFailed indicates the merged PDF could not be written.
	ErrMergeWriteFailed = errors.New("merge write failed")

	// ErrNoFilesSucceeded indicates a run produced no mergeable file.
	// No artifact is written when this is returned.
	ErrNoFilesSucceeded = errors.New("no files succeeded")

	// ErrSummarizationFailed is internal to the summarizer. It never leaves
	// the pipeline: the fallback excerpt is used instead.
	ErrSummarizationFailed = errors.New("summarization failed")
)

// IsFileError reports whether err is a per-file, non-fatal failure.
func IsFileError(err error) bool {
	return errors.Is(err, ErrDecryptionFailed) || errors.Is(err, ErrParseFailed)
}
