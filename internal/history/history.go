// Package history records applied sync runs in a local sqlite database
// so past reconciliations can be reviewed. Catalog items themselves are
// never cached here, only the actions taken.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/logictoad/plex-jellyfin-cli/internal/paths"
)

// Store is the handle to the sync history database.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// Run is one recorded sync invocation.
type Run struct {
	ID        int64
	Direction string // e.g. "plex,jellyfin"
	Kind      string // "movie" or "show"
	Planned   int
	Applied   int
	Failed    int
	StartedAt time.Time
}

// Action is one watched-status write belonging to a run.
type Action struct {
	ID      int64
	RunID   int64
	Title   string
	Year    int
	Watched bool
	Error   string // empty for successful writes
}

// Open opens or creates the database at the default location.
func Open() (*Store, error) {
	dbPath, err := paths.HistoryPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get history path: %w", err)
	}
	return OpenPath(dbPath)
}

// OpenPath opens or creates the database at a specific path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return s, nil
}

// OpenInMemory opens an in-memory database for testing.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	s := &Store{db: db, path: ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sync_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			direction TEXT NOT NULL,
			kind TEXT NOT NULL,
			planned INTEGER NOT NULL,
			applied INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS sync_actions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES sync_runs(id),
			title TEXT NOT NULL,
			year INTEGER NOT NULL,
			watched INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_sync_actions_run ON sync_actions(run_id);
	`)
	return err
}

// RecordRun stores a completed sync run and its actions.
func (s *Store) RecordRun(run Run, actions []Action) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO sync_runs (direction, kind, planned, applied, failed, started_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.Direction, run.Kind, run.Planned, run.Applied, run.Failed, run.StartedAt,
	)
	if err != nil {
		return 0, err
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, action := range actions {
		if _, err := tx.Exec(`
			INSERT INTO sync_actions (run_id, title, year, watched, error)
			VALUES (?, ?, ?, ?, ?)`,
			runID, action.Title, action.Year, action.Watched, action.Error,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// RecentRuns returns the N most recent sync runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, direction, kind, planned, applied, failed, started_at
		FROM sync_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.Direction, &run.Kind,
			&run.Planned, &run.Applied, &run.Failed, &run.StartedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// RunActions returns the actions belonging to one run.
func (s *Store) RunActions(runID int64) ([]Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, run_id, title, year, watched, error
		FROM sync_actions
		WHERE run_id = ?
		ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		var action Action
		if err := rows.Scan(
			&action.ID, &action.RunID, &action.Title,
			&action.Year, &action.Watched, &action.Error,
		); err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	return actions, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
