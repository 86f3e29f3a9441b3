// Package sqlite provides the database connection factory and schema
// migrations for chatforge. Uses modernc.org/sqlite, a pure-Go driver
// (no CGO), so the binary stays a single static artifact.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Register the modernc sqlite driver under the name "sqlite".
	_ "modernc.org/sqlite"
)

// NewDB opens (or creates) a SQLite database at path configured for
// concurrent request handling:
//   - WAL journal mode (readers do not block the writer)
//   - foreign_keys ON (sqlite ships with FK enforcement off; the schema
//     relies on ON DELETE CASCADE for project → prompt/session → message)
//   - 5s busy timeout (burst appends from concurrent chat turns)
//   - synchronous=NORMAL (durable enough under WAL, much faster than FULL)
//
// Pass ":memory:" for throwaway test databases.
func NewDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return nil, fmt.Errorf("sqlite.NewDB: parent directory %q does not exist", dir)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(ON)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.NewDB: open %q: %w", path, err)
	}

	// WAL permits many readers; sqlite serializes writers itself, so a
	// pool wider than one connection is safe.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("sqlite.NewDB: ping %q: %w", path, err)
	}

	return db, nil
}
