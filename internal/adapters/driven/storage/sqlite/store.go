package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/digestpdf/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/digestpdf/internal/core/domain"
	"github.com/custodia-labs/digestpdf/internal/core/ports/driven"
)

// DatabaseName is the history database file name inside the data directory.
const DatabaseName = "history.db"

// Ensure Store implements the interface.
var _ driven.RunHistoryStore = (*Store)(nil)

// Store is the SQLite-backed run history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.digestpdf/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".digestpdf", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_runs.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores a finished run and its outcomes in one transaction.
// Saving a run id again replaces the earlier row.
func (s *Store) Save(ctx context.Context, report *domain.RunReport) (err error) {
	if report == nil || report.RunID == "" {
		return fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}

	recordsJSON, err := json.Marshal(report.Records)
	if err != nil {
		return fmt.Errorf("marshalling records: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", report.RunID); err != nil {
		return fmt.Errorf("replacing run: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, input_dir, output_path, index_path,
			total, succeeded, skipped, fallbacks, records)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.RunID, report.StartedAt.UTC(), nullTime(report.FinishedAt),
		report.InputDir, report.OutputPath, report.IndexPath,
		report.Total(), report.Succeeded(), report.Skipped(), report.Fallbacks(),
		string(recordsJSON))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outcomes (run_id, position, file, rel_path, status, error,
			extraction, tokenization, summary, language, pages, first_page)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing outcome insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range report.Outcomes {
		_, err = stmt.ExecContext(ctx, report.RunID, i, o.File, o.RelPath, string(o.Status),
			nullString(o.Reason()), string(o.Extraction), string(o.Tokenization), string(o.Summary),
			nullString(o.Language), o.Pages, o.FirstPage)
		if err != nil {
			return fmt.Errorf("saving outcome %s: %w", o.RelPath, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// List returns the most recent runs first, with outcomes. A limit of
// zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]domain.RunReport, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, input_dir, output_path, index_path
		FROM runs ORDER BY started_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var reports []domain.RunReport //nolint:prealloc // size unknown from query
	for rows.Next() {
		report, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		reports = append(reports, *report)
	}
	err = errors.Join(rows.Err(), rows.Close())
	if err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range reports {
		outcomes, err := s.outcomes(ctx, reports[i].RunID)
		if err != nil {
			return nil, err
		}
		reports[i].Outcomes = outcomes
	}
	return reports, nil
}

// Get returns a run with its outcomes and records.
func (s *Store) Get(ctx context.Context, runID string) (*domain.RunReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, input_dir, output_path, index_path
		FROM runs WHERE id = ?
	`, runID)

	report, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var recordsJSON string
	if err := s.db.QueryRowContext(ctx, "SELECT records FROM runs WHERE id = ?", runID).Scan(&recordsJSON); err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	if err := json.Unmarshal([]byte(recordsJSON), &report.Records); err != nil {
		return nil, fmt.Errorf("unmarshalling records: %w", err)
	}

	outcomes, err := s.outcomes(ctx, runID)
	if err != nil {
		return nil, err
	}
	report.Outcomes = outcomes
	return report, nil
}

func (s *Store) outcomes(ctx context.Context, runID string) ([]domain.FileOutcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file, rel_path, status, error, extraction, tokenization, summary,
			language, pages, first_page
		FROM outcomes WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.FileOutcome //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			o                                      domain.FileOutcome
			status, extraction, tokenization, summ string
			reason, language                       sql.NullString
		)
		if err := rows.Scan(&o.File, &o.RelPath, &status, &reason, &extraction, &tokenization,
			&summ, &language, &o.Pages, &o.FirstPage); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Status = domain.OutcomeStatus(status)
		o.Extraction = domain.StageStatus(extraction)
		o.Tokenization = domain.StageStatus(tokenization)
		o.Summary = domain.StageStatus(summ)
		o.Language = language.String
		if reason.Valid && reason.String != "" {
			o.Err = errors.New(reason.String)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return outcomes, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.RunReport, error) {
	var (
		report   domain.RunReport
		finished sql.NullTime
	)
	if err := row.Scan(&report.RunID, &report.StartedAt, &finished, &report.InputDir,
		&report.OutputPath, &report.IndexPath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if finished.Valid {
		report.FinishedAt = finished.Time
	}
	return &report, nil
}

// nullString converts empty strings to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
