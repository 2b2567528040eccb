// Package journal keeps a local sqlite record of migration runs: one row
// per entity run with its counters and final cursor. It backs the status
// command and survives across invocations of the one-shot CLI.
package journal

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	migrate "github.com/dentalops/dispatch-migrate"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run is one recorded entity run.
type Run struct {
	ID         int64
	Entity     string
	Phase      string
	DryRun     bool
	Fetched    int
	Migrated   int
	Skipped    int
	Failed     int
	LastCursor int64
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// Journal is a handle to the run journal.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database and applies its
// schema.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("journal migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(database.DialectSQLite3, db, sub)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("journal migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one completed (or aborted) entity run. runErr, if non-nil,
// is stored alongside the counters.
func (j *Journal) Record(ctx context.Context, rep migrate.Report, runErr error) error {
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (entity, phase, dry_run, fetched, migrated, skipped, failed, last_cursor, started_at, finished_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rep.Entity), string(rep.Phase), rep.DryRun,
		rep.Fetched, rep.Migrated, rep.Skipped, rep.Failed,
		int64(rep.LastCursor),
		rep.StartedAt.UTC().Format(time.RFC3339),
		rep.FinishedAt.UTC().Format(time.RFC3339),
		errText,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, entity, phase, dry_run, fetched, migrated, skipped, failed, last_cursor, started_at, finished_at, error
		FROM runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LastCompleted returns the most recent clean (error-free, non-dry) run for
// an entity, or nil if none exists.
func (j *Journal) LastCompleted(ctx context.Context, entity migrate.Entity) (*Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, entity, phase, dry_run, fetched, migrated, skipped, failed, last_cursor, started_at, finished_at, error
		FROM runs
		WHERE entity = ? AND error = '' AND dry_run = 0
		ORDER BY id DESC
		LIMIT 1`, string(entity))
	if err != nil {
		return nil, fmt.Errorf("select last completed run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate runs: %w", err)
		}
		return nil, nil
	}
	r, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		r                   Run
		startedAt, finished string
	)
	if err := rows.Scan(&r.ID, &r.Entity, &r.Phase, &r.DryRun, &r.Fetched, &r.Migrated, &r.Skipped, &r.Failed, &r.LastCursor, &startedAt, &finished, &r.Error); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	var err error
	if r.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if r.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return r, nil
}
