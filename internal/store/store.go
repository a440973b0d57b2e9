package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	"github.com/jmoiron/sqlx"

	// Postgres driver for shared, multi-device storage.
	_ "github.com/lib/pq"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite    = "sqlite"   // modernc.org/sqlite
	DriverSQLiteCGO = "sqlite3"  // github.com/mattn/go-sqlite3, cgo builds only
	DriverPostgres  = "postgres" // github.com/lib/pq
)

const kvTable = "kv_entries"

// Store holds the database handle and provides access to the key-value table.
type Store struct {
	db      *sqlx.DB
	dialect string
}

// Open connects to the database identified by driver and dsn, applies
// SQLite pragmas where relevant and creates the key-value table.
func Open(driver, dsn string) (*Store, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == dialect.SQLite {
		// SQLite allows one writer; a single connection also keeps
		// in-memory databases from splitting per connection.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	s := &Store{db: db, dialect: d}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Dialect returns the ent dialect name in use.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// KV returns the key-value namespace backed by this store.
func (s *Store) KV() KV {
	return &sqlKV{db: s.db, dialect: s.dialect}
}

// kvSchema holds the kv_entries DDL per dialect.
var kvSchema = map[string]string{
	dialect.SQLite: `CREATE TABLE IF NOT EXISTS kv_entries (
		name       TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	dialect.Postgres: `CREATE TABLE IF NOT EXISTS kv_entries (
		name       TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

func (s *Store) migrate(ctx context.Context) error {
	ddl, ok := kvSchema[s.dialect]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", s.dialect)
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", kvTable, err)
	}
	return nil
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case DriverSQLite, DriverSQLiteCGO:
		return dialect.SQLite, nil
	case DriverPostgres:
		return dialect.Postgres, nil
	}
	return "", fmt.Errorf("unsupported storage driver %q", driver)
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. HANZI_DB environment variable
// 2. $XDG_DATA_HOME/hanzi/hanzi.db
// 3. ~/.local/share/hanzi/hanzi.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("HANZI_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "hanzi", "hanzi.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
