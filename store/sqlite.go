//go:build sqlite

package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps records in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		err = ErrPathRequired
		return
	}
	if s.db != nil {
		return
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return
	}

	err = db.PingContext(ctx)
	if err == nil {
		err = createTables(ctx, db)
	}
	if err != nil {
		_ = db.Close()
		return
	}

	s.db = db
	return
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeRun(run)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, start, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start = excluded.start,
			payload = excluded.payload
	`, run.ID, run.Start.UnixNano(), payload)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}

	run, err := DecodeRun(payload)
	if err != nil {
		return Run{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) Runs(ctx context.Context) (runs []Run, err error) {
	db, err := s.getDB()
	if err != nil {
		return
	}

	rows, err := db.QueryContext(ctx, `SELECT payload FROM runs ORDER BY start`)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		err = rows.Scan(&payload)
		if err != nil {
			return
		}
		var run Run
		run, err = DecodeRun(payload)
		if err != nil {
			return
		}
		runs = append(runs, run)
	}

	err = rows.Err()
	return
}

func (s *SQLiteStore) SaveImprovement(ctx context.Context, imp Improvement) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeImprovement(imp)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO improvements (run_id, generation, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			payload = excluded.payload
	`, imp.RunID, imp.Generation, payload)
	return err
}

func (s *SQLiteStore) Improvements(ctx context.Context, runID string) (imps []Improvement, err error) {
	db, err := s.getDB()
	if err != nil {
		return
	}

	rows, err := db.QueryContext(ctx, `SELECT payload FROM improvements WHERE run_id = ? ORDER BY generation`, runID)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		err = rows.Scan(&payload)
		if err != nil {
			return
		}
		var imp Improvement
		imp, err = DecodeImprovement(payload)
		if err != nil {
			return
		}
		imps = append(imps, imp)
	}

	err = rows.Err()
	return
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			start INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS improvements (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}
