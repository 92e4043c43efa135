package runlog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mythoscards/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped when the runs table changes shape. An old
// database with a different version is rejected rather than migrated; the
// history is advisory and can be deleted.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was written by a different
// version of the schema.
var ErrSchemaMismatch = errors.New("run history schema version mismatch")

// Run kinds.
const (
	KindList    = "list"
	KindImages  = "images"
	KindShorten = "shorten"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID            string
	Kind          string
	ChecklistPath string
	ImageDir      string
	Status        string
	Message       string
	TotalCards    int
	Found         int
	Missing       int
	Conflicts     int
	Errors        int
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Store persists runs in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the run history database under the configured log
// directory, creating it on first use.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.LogDir, "runs.db"))
}

// OpenPath connects to a run history database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
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
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx,
		"SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Begin records the start of a run and returns it with a fresh ID.
func (s *Store) Begin(ctx context.Context, kind, checklistPath, imageDir string) (*Run, error) {
	run := &Run{
		ID:            uuid.NewString(),
		Kind:          kind,
		ChecklistPath: checklistPath,
		ImageDir:      imageDir,
		Status:        StatusRunning,
		StartedAt:     time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, checklist_path, image_dir, status, started_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.ChecklistPath, run.ImageDir, run.Status,
		run.StartedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Complete marks a run finished with its final counters.
func (s *Store) Complete(ctx context.Context, run *Run) error {
	run.Status = StatusCompleted
	return s.finish(ctx, run)
}

// Fail marks a run failed with a message explaining why.
func (s *Store) Fail(ctx context.Context, run *Run, message string) error {
	run.Status = StatusFailed
	run.Message = message
	return s.finish(ctx, run)
}

func (s *Store) finish(ctx context.Context, run *Run) error {
	run.FinishedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, message = ?, total_cards = ?, found = ?,
            missing = ?, conflicts = ?, errors = ?, finished_at = ?
         WHERE id = ?`,
		run.Status, run.Message, run.TotalCards, run.Found,
		run.Missing, run.Conflicts, run.Errors,
		run.FinishedAt.Format(time.RFC3339Nano), run.ID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Get loads one run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, checklist_path, image_dir, status, message,
            total_cards, found, missing, conflicts, errors, started_at, finished_at
         FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return run, err
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, checklist_path, image_dir, status, message,
            total_cards, found, missing, conflicts, errors, started_at, finished_at
         FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var startedAt string
	var finishedAt sql.NullString

	err := row.Scan(&run.ID, &run.Kind, &run.ChecklistPath, &run.ImageDir,
		&run.Status, &run.Message, &run.TotalCards, &run.Found,
		&run.Missing, &run.Conflicts, &run.Errors, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid && finishedAt.String != "" {
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt.String); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
	}
	return &run, nil
}
