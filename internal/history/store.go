// Package history persists a record of completed searches to a local
// SQLite database so `seek history` can show what was searched, where, and
// with what outcome. Recording is best-effort: a failed write never fails
// the search that produced it.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Search is one recorded search run.
type Search struct {
	ID               int64
	RunID            string
	Root             string
	Pattern          string
	Regex            bool
	Matches          int
	FilesScanned     int
	PermissionErrors int
	Elapsed          time.Duration
	LimitReached     bool
	TimedOut         bool
	StartedAt        time.Time
}

// Store manages the SQLite search-history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if necessary) the history database at dbPath.
// ":memory:" is accepted for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// busy_timeout first so subsequent statements wait on locks instead of
	// failing when another seek process holds the database.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Record inserts one completed search.
func (s *Store) Record(entry Search) error {
	_, err := s.db.Exec(`
		INSERT INTO searches (
			run_id, root, pattern, regex, matches, files_scanned,
			permission_errors, elapsed_ms, limit_reached, timed_out, started_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Root, entry.Pattern, entry.Regex,
		entry.Matches, entry.FilesScanned, entry.PermissionErrors,
		entry.Elapsed.Milliseconds(), entry.LimitReached, entry.TimedOut,
		entry.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// Recent returns up to limit searches, newest first.
func (s *Store) Recent(limit int) ([]Search, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, root, pattern, regex, matches, files_scanned,
		       permission_errors, elapsed_ms, limit_reached, timed_out, started_at
		FROM searches
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Search
	for rows.Next() {
		var entry Search
		var elapsedMS int64
		if err := rows.Scan(
			&entry.ID, &entry.RunID, &entry.Root, &entry.Pattern, &entry.Regex,
			&entry.Matches, &entry.FilesScanned, &entry.PermissionErrors,
			&elapsedMS, &entry.LimitReached, &entry.TimedOut, &entry.StartedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entry.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than keepDays and returns how many were
// removed. keepDays <= 0 keeps everything.
func (s *Store) Prune(keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -keepDays)
	res, err := s.db.Exec(`DELETE FROM searches WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}

// Clear deletes all recorded searches.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM searches`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
