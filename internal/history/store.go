package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"audiocourse/internal/build"
	"audiocourse/internal/services"
)

// Store records build runs in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record stores a finished report and its failures in one transaction.
func (s *Store) Record(ctx context.Context, report build.Report, languageCode string) error {
	if report.RunID == "" {
		return fmt.Errorf("record run: missing run id")
	}
	counts := report.Counts()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO build_runs (
            run_id, started_at, finished_at, dry_run, language_code,
            total, built, skipped, failed, planned
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		formatTime(report.Started),
		formatTime(report.Finished),
		boolToInt(report.DryRun),
		nullableString(languageCode),
		counts.Total(),
		counts.Built,
		counts.Skipped,
		counts.Failed,
		counts.Planned,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, res := range report.Failed() {
		details := services.Details(res.Err)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO build_failures (
                run_id, line, folder, sentence, reason, error_kind, error_message
            ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			report.RunID,
			res.Sentence.Line,
			res.Sentence.FolderName,
			res.Sentence.Text,
			res.Reason,
			nullableString(details.Kind),
			nullableString(details.Message),
		)
		if err != nil {
			return fmt.Errorf("insert failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, started_at, finished_at, dry_run, language_code,
                total, built, skipped, failed, planned
           FROM build_runs
          ORDER BY started_at DESC, id DESC
          LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			started  string
			finished string
			dryRun   int
			language sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.RunID, &started, &finished, &dryRun, &language,
			&run.Total, &run.Built, &run.Skipped, &run.Failed, &run.Planned); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Started = parseTime(started)
		run.Finished = parseTime(finished)
		run.DryRun = dryRun != 0
		run.LanguageCode = language.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Failures lists the failed units of one run in line order.
func (s *Store) Failures(ctx context.Context, runID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, line, folder, sentence, reason, error_kind, error_message
           FROM build_failures
          WHERE run_id = ?
          ORDER BY line, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var out []Failure
	for rows.Next() {
		var (
			f       Failure
			kind    sql.NullString
			message sql.NullString
		)
		if err := rows.Scan(&f.RunID, &f.Line, &f.Folder, &f.Sentence, &f.Reason, &kind, &message); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		f.ErrorKind = kind.String
		f.ErrorMessage = message.String
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}
	return out, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
