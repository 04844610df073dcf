package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/insightloom/internal/insight"
)

// ErrNotFound is returned when a run id does not exist in the store.
var ErrNotFound = errors.New("run not found")

// Store persists completed insight runs in a local SQLite database. It
// replaces ad-hoc in-session caching with an explicit, durable record that
// the caller manages.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		dashboard TEXT NOT NULL,
		source TEXT,
		created_at TEXT NOT NULL,
		lines TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save records one completed insight run.
func (s *Store) Save(res *insight.Result) error {
	lines, err := json.Marshal(res.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO runs (id, dashboard, source, created_at, lines) VALUES (?, ?, ?, ?, ?)",
		res.ID.String(), res.DashboardName, res.Source, res.CreatedAt.UTC().Format(time.RFC3339Nano), string(lines),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns up to limit runs, newest first. A non-positive limit lists
// everything.
func (s *Store) List(limit int) ([]insight.Result, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		"SELECT id, dashboard, source, created_at, lines FROM runs ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var out []insight.Result
	for rows.Next() {
		res, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// Get returns the run with the given id, or ErrNotFound.
func (s *Store) Get(id string) (*insight.Result, error) {
	row := s.db.QueryRow("SELECT id, dashboard, source, created_at, lines FROM runs WHERE id = ?", id)
	res, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return res, err
}

// Delete removes the run with the given id, or returns ErrNotFound.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*insight.Result, error) {
	var (
		idRaw, created, linesRaw string
		res                      insight.Result
	)
	if err := row.Scan(&idRaw, &res.DashboardName, &res.Source, &created, &linesRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	id, err := uuid.Parse(idRaw)
	if err != nil {
		return nil, fmt.Errorf("parse run id %q: %w", idRaw, err)
	}
	res.ID = id
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse run timestamp %q: %w", created, err)
	}
	res.CreatedAt = t
	if err := json.Unmarshal([]byte(linesRaw), &res.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal lines: %w", err)
	}
	return &res, nil
}
