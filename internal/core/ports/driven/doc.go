// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FileSource: Discovers and opens PDFs under a root directory
//   - TextExtractor: Extracts page text from a PDF
//   - SentenceTokenizer: Splits text into sentences per detected language
//   - Summarizer: Ranks sentences and builds an extractive summary
//   - DocumentMerger: Merges PDFs with one bookmark per file
//   - IndexStoreFactory: Opens the JSON summary index at a path
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DigestWriter: Plain-text digest next to the index
//   - RunHistoryStore: Persisted run reports
//   - ProgressReporter: Progress display
//   - DirectoryWatcher: Change notifications for watch mode
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
