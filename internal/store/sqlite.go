package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite is a Store backed by a SQLite database. Each opened handle stamps
// its rows with a fresh session id so several sessions can share one file.
type SQLite struct {
	db        *sql.DB
	sessionID string
}

// OpenSQLite opens (or creates) the database file at path and runs pending
// migrations. Pass ":memory:" for an in-memory database (used by tests).
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: setting busy timeout: %w", err)
	}

	s := &SQLite{db: db, sessionID: uuid.New().String()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: running migrations: %w", err)
	}
	return s, nil
}

// SessionID identifies the rows written through this handle.
func (s *SQLite) SessionID() string { return s.sessionID }

// Append inserts one delivery row.
func (s *SQLite) Append(entry vignette.DeliveryLogEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO deliveries (session_id, record_id, delivered_at, reflection_included, reflection_text)
		 VALUES (?, ?, ?, ?, ?)`,
		s.sessionID,
		entry.RecordID,
		entry.Timestamp.Format(time.RFC3339Nano),
		entry.ReflectionIncluded,
		entry.ReflectionText,
	)
	if err != nil {
		return fmt.Errorf("store: insert delivery: %w", err)
	}
	return nil
}

// Entries returns every delivery in insertion order.
func (s *SQLite) Entries() ([]vignette.DeliveryLogEntry, error) {
	rows, err := s.db.Query(
		`SELECT record_id, delivered_at, reflection_included, reflection_text
		 FROM deliveries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("store: query deliveries: %w", err)
	}
	defer rows.Close()

	var entries []vignette.DeliveryLogEntry
	for rows.Next() {
		var (
			e  vignette.DeliveryLogEntry
			ts string
		)
		if err := rows.Scan(&e.RecordID, &ts, &e.ReflectionIncluded, &e.ReflectionText); err != nil {
			return nil, fmt.Errorf("store: scan delivery: %w", err)
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("store: parse delivered_at %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeliveryCounts returns how many times each record id has been delivered
// across all sessions.
func (s *SQLite) DeliveryCounts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT record_id, COUNT(*) FROM deliveries GROUP BY record_id`)
	if err != nil {
		return nil, fmt.Errorf("store: count deliveries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("store: scan count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// migrate applies embedded SQL migrations that haven't been run yet.
func (s *SQLite) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}
	return nil
}

// parseMigrationVersion extracts the leading number from "001_name.sql".
func parseMigrationVersion(name string) (int, error) {
	prefix, _, _ := strings.Cut(name, "_")
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("invalid migration filename %q: %w", name, err)
	}
	return v, nil
}
