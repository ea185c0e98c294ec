// Package domain defines the core business entities for digestpdf.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - SourceFile: A discovered PDF with its natural-sort key
//   - SummaryRecord: The persisted summary of one source file
//   - FileOutcome: The per-file result of a run
//   - RunReport: The aggregate result of a run
//   - Settings: The configuration surface consumed by the core
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, golang.org/x/text
//   - Cannot Import: Any internal/ package, any other external dependency
package domain
