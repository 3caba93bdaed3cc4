package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/log"
	"github.com/footprint-tools/brig/internal/store/migrations"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store keeps execution history in SQLite.
// It implements the domain.HistoryStore interface.
type Store struct {
	db   *sql.DB
	path string
}

// New opens the database at path and runs pending migrations.
func New(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err = configureSQLite(db, path); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log.Debug("store: history ready at %s", path)
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// configureSQLite lets the shell and a one-shot `brig run` share the file.
func configureSQLite(db *sql.DB, path string) error {
	pragmas := []string{"PRAGMA busy_timeout = 2000"}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// setDBPermissions sets restrictive file permissions on the database and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == MemoryPath {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Record appends an entry. A zero RanAt is stamped with the current time.
func (s *Store) Record(entry domain.HistoryEntry) (int64, error) {
	if entry.RanAt.IsZero() {
		entry.RanAt = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO history (source_id, source_name, input, success, result, ran_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.SourceID.String(),
		entry.Source,
		entry.Input,
		entry.Success,
		entry.Result,
		entry.RanAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns entries matching filter, newest first.
func (s *Store) List(filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	query := `
		SELECT id, source_id, source_name, input, success, result, ran_at
		FROM history
	`

	var (
		clauses []string
		args    []any
	)

	if filter.Source != "" {
		clauses = append(clauses, "source_name = ?")
		args = append(args, filter.Source)
	}

	if filter.Prefix != "" {
		clauses = append(clauses, "substr(input, 1, length(?)) = ?")
		args = append(args, filter.Prefix, filter.Prefix)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(rows *sql.Rows) (domain.HistoryEntry, error) {
	var (
		e        domain.HistoryEntry
		sourceID string
		ranAt    string
	)
	if err := rows.Scan(&e.ID, &sourceID, &e.Source, &e.Input, &e.Success, &e.Result, &ranAt); err != nil {
		return e, err
	}

	id, err := uuid.Parse(sourceID)
	if err != nil {
		return e, fmt.Errorf("history %d: source id: %w", e.ID, err)
	}
	e.SourceID = id

	t, err := time.Parse(time.RFC3339Nano, ranAt)
	if err != nil {
		return e, fmt.Errorf("history %d: timestamp: %w", e.ID, err)
	}
	e.RanAt = t
	return e, nil
}

// Inputs returns distinct successful inputs starting with prefix, most
// recent first. Completion calls this with a deadline.
func (s *Store) Inputs(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT input FROM history
		 WHERE success = 1 AND substr(input, 1, length(?)) = ?
		 GROUP BY input
		 ORDER BY MAX(id) DESC
		 LIMIT ?`,
		prefix, prefix, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, err
		}
		out = append(out, input)
	}
	return out, rows.Err()
}

// Clear deletes every entry.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM history")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ domain.HistoryStore = (*Store)(nil)
