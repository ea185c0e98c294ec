package domain

import (
	"fmt"
	"strings"
)

// Default configuration values.
const (
	DefaultSentences     = 3
	DefaultMaxChars      = 20000
	DefaultFallbackChars = 200
	DefaultWorkers       = 1
	DefaultOutputPath    = "output/merged.pdf"
	DefaultIndexName     = "summary_index.json"
	DefaultDigestName    = "summary.txt"
)

// IndexPolicy decides what happens when a file identity already exists
// in the persisted index.
type IndexPolicy string

const (
	// PolicyAppend keeps historical records; repeated runs accumulate.
	PolicyAppend IndexPolicy = "append"

	// PolicyReplace supersedes records with the same identity, keeping the
	// position of the first occurrence.
	PolicyReplace IndexPolicy = "replace"
)

// IsValid returns true if the policy is recognised.
func (p IndexPolicy) IsValid() bool {
	switch p {
	case PolicyAppend, PolicyReplace:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p IndexPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p IndexPolicy) Description() string {
	switch p {
	case PolicyAppend:
		return "Append (keep history)"
	case PolicyReplace:
		return "Replace (latest record per file)"
	default:
		return "Unknown"
	}
}

// Settings is the configuration surface consumed by the core.
type Settings struct {
	// Sentences is the number of summary sentences, at least 1.
	Sentences int

	// MaxChars bounds the summarization input. 0 means unlimited.
	MaxChars int

	// FallbackChars is the length of the fallback excerpt.
	FallbackChars int

	// Recursive includes PDFs in subdirectories.
	Recursive bool

	// Workers is the number of files processed concurrently.
	Workers int

	// Verbose affects logging only.
	Verbose bool

	// OutputPath is where the merged PDF is written.
	OutputPath string

	// IndexPath is the JSON index location. Empty means next to OutputPath.
	IndexPath string

	// IndexPolicy resolves repeated identities across runs.
	IndexPolicy IndexPolicy

	// WriteDigest also writes a plain-text digest next to the index.
	WriteDigest bool
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Sentences:     DefaultSentences,
		MaxChars:      DefaultMaxChars,
		FallbackChars: DefaultFallbackChars,
		Workers:       DefaultWorkers,
		OutputPath:    DefaultOutputPath,
		IndexPolicy:   PolicyAppend,
		WriteDigest:   true,
	}
}

// Validate checks the settings and returns ErrInvalidInput on failure.
func (s Settings) Validate() error {
	var problems []string
	if s.Sentences < 1 {
		problems = append(problems, "sentences must be at least 1")
	}
	if s.MaxChars < 0 {
		problems = append(problems, "max chars must not be negative")
	}
	if s.FallbackChars < 1 {
		problems = append(problems, "fallback chars must be at least 1")
	}
	if s.Workers < 1 {
		problems = append(problems, "workers must be at least 1")
	}
	if strings.TrimSpace(s.OutputPath) == "" {
		problems = append(problems, "output path is required")
	}
	if !s.IndexPolicy.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown index policy %q", s.IndexPolicy))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
