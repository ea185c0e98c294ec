// Package sqlite stores run history in SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It implements driven.RunHistoryStore: one row per run in
// the runs table and one row per source file in the outcomes table.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files.
//
// # Data Location
//
// By default, the database is stored at ~/.digestpdf/data/history.db
package sqlite
