package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if run.ID == "" {
		return errors.New("run id is required")
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, population_size, input_size, output_size, ticks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			seed = excluded.seed,
			population_size = excluded.population_size,
			input_size = excluded.input_size,
			output_size = excluded.output_size,
			ticks = excluded.ticks,
			created_at = excluded.created_at
	`, run.ID, fmt.Sprint(run.Seed), run.PopulationSize, run.InputSize, run.OutputSize, run.Ticks,
		run.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	var (
		run       Run
		seed      string
		createdAt string
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, seed, population_size, input_size, output_size, ticks, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &seed, &run.PopulationSize, &run.InputSize, &run.OutputSize, &run.Ticks, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}

	// seeds are stored as text: sqlite integers are signed 64-bit
	if _, err := fmt.Sscan(seed, &run.Seed); err != nil {
		return Run{}, false, fmt.Errorf("decode seed of run %s: %w", id, err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, false, fmt.Errorf("decode created_at of run %s: %w", id, err)
	}
	return run, true, nil
}

func (s *SQLiteStore) SaveOutputs(ctx context.Context, runID string, outputs []TickOutput) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.New("unknown run: " + runID)
		}
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outputs (run_id, tick, network, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, tick, network) DO UPDATE SET
			payload = excluded.payload
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, out := range outputs {
		payload, err := encodeValues(out.Values)
		if err != nil {
			return fmt.Errorf("encode outputs tick %d network %d: %w", out.Tick, out.Network, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, out.Tick, out.Network, payload); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetOutputs(ctx context.Context, runID string) ([]TickOutput, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT tick, network, payload FROM outputs
		WHERE run_id = ?
		ORDER BY tick, network
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outputs := []TickOutput{}
	for rows.Next() {
		var (
			out     TickOutput
			payload []byte
		)
		if err := rows.Scan(&out.Tick, &out.Network, &payload); err != nil {
			return nil, err
		}
		out.Values, err = decodeValues(payload)
		if err != nil {
			return nil, fmt.Errorf("decode outputs tick %d network %d: %w", out.Tick, out.Network, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, rows.Err()
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
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed TEXT NOT NULL,
			population_size INTEGER NOT NULL,
			input_size INTEGER NOT NULL,
			output_size INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS outputs (
			run_id TEXT NOT NULL REFERENCES runs(id),
			tick INTEGER NOT NULL,
			network INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (run_id, tick, network)
		);
	`)
	return err
}
