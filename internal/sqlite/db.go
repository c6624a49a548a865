package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/rpggio/tracker/internal/repository"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// Open opens the database at path, applies the schema and returns a backend.
func Open(path string) (*repository.Backend, error) {
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &repository.Backend{
		Activities: NewActivityRepository(db),
		Logs:       NewLogRepository(db),
		Close:      db.Close,
	}, nil
}

// RunMigrations creates the schema if it does not exist yet
func (db *DB) RunMigrations() error {
	migration := `
-- Activity collection; position is the collection order
CREATE TABLE IF NOT EXISTS activities (
    position INTEGER PRIMARY KEY,
    sno INTEGER NOT NULL,
    id TEXT NOT NULL DEFAULT '',
    priority TEXT NOT NULL DEFAULT '',
    project TEXT NOT NULL DEFAULT '',
    line TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    start_date TEXT NOT NULL DEFAULT '',
    complete_date TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    attachment TEXT NOT NULL DEFAULT '',
    remarks TEXT NOT NULL DEFAULT ''
);

-- Activity logs, one collection per log key
CREATE TABLE IF NOT EXISTS activity_logs (
    log_key TEXT NOT NULL,
    seq INTEGER NOT NULL,
    timestamp TEXT NOT NULL,
    action TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT '',
    file TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (log_key, seq)
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
