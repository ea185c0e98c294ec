package domain

import "time"

// SummaryMethod records which path produced a summary.
type SummaryMethod string

const (
	// MethodTextRank marks a ranked extractive summary.
	MethodTextRank SummaryMethod = "textrank"

	// MethodFallback marks the fixed-length prefix excerpt.
	MethodFallback SummaryMethod = "fallback"
)

// IsValid returns true if the method is recognised.
func (m SummaryMethod) IsValid() bool {
	return m == MethodTextRank || m == MethodFallback
}

// String returns the string representation.
func (m SummaryMethod) String() string {
	return string(m)
}

// SummaryRecord is the metadata unit persisted in the index for one
// successfully processed source file.
type SummaryRecord struct {
	// File is the identity of the source: its absolute path.
	File string `json:"file"`

	// Name is the base file name.
	Name string `json:"name"`

	// Summary is the generated summary text.
	Summary string `json:"summary"`

	// SentenceCount is the number of sentences actually used.
	// Zero for fallback excerpts.
	SentenceCount int `json:"sentence_count"`

	// CharCount is the length of Summary in characters.
	CharCount int `json:"char_count"`

	// Language is the detected ISO 639-1 tag, if detection was conclusive.
	Language string `json:"language,omitempty"`

	// Method distinguishes ranked summaries from fallback excerpts.
	Method SummaryMethod `json:"method"`

	// Pages is the page count merged for this file.
	Pages int `json:"pages"`

	// RunID identifies the run that produced the record.
	RunID string `json:"run_id"`

	// CreatedAt is when the record was produced.
	CreatedAt time.Time `json:"created_at"`
}
