// Package sqlite provides the durable history store backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tablewise/tablewise-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/ports/driven"
)

// Store is the SQLite-backed storage for the per-identity history log.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.tablewise/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tablewise", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode so concurrent sessions for the same identity degrade to
	// last-write-wins instead of erroring.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the identity's entries in insertion order, excluding any
// entry older than the history window. Eviction is enforced on every read;
// nothing is deleted, so a narrower window applied later sees the same
// stored rows.
func (s *Store) Load(ctx context.Context, identity domain.Identity) ([]domain.HistoryEntry, error) {
	cutoff := time.Now().UTC().Add(-domain.HistoryWindow)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, response, chart_type, result, timestamp
		FROM history_entries
		WHERE identity_key = ? AND timestamp >= ?
		ORDER BY seq
	`, identity.StorageKey(), cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var chartType, resultJSON string
		var ts sql.NullTime
		if err := rows.Scan(&entry.ID, &entry.Query, &entry.ResponseSummary,
			&chartType, &resultJSON, &ts); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if err := json.Unmarshal([]byte(resultJSON), &entry.Result); err != nil {
			return nil, fmt.Errorf("unmarshaling result payload: %w", err)
		}
		entry.ChartType = domain.ChartType(chartType)
		if ts.Valid {
			entry.Timestamp = ts.Time
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}

	return entries, nil
}

// Append adds an entry to the end of the identity's log. Entries are
// append-only; nothing updates or deletes them.
func (s *Store) Append(ctx context.Context, identity domain.Identity, entry domain.HistoryEntry) error {
	resultJSON, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("marshalling result payload: %w", err)
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history_entries (id, identity_key, query, response, chart_type, result, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, identity.StorageKey(), entry.Query, entry.ResponseSummary,
		string(entry.ChartType), string(resultJSON), entry.Timestamp.UTC())

	if err != nil {
		return fmt.Errorf("appending history entry: %w", err)
	}
	return nil
}

// migrate applies pending schema migrations from the embedded filesystem.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
