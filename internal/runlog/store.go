package runlog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for launch records.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Launch is the record written before the child process starts.
type Launch struct {
	RunID     string
	LaunchID  string
	JobName   string
	JobHash   string
	Argv      []string
	StartedAt time.Time
}

// Completion is the record written after the child process exits.
type Completion struct {
	RunID      string
	ExitCode   int
	Duration   time.Duration
	FinishedAt time.Time
}

// Run is a full run-log row, as read back.
type Run struct {
	RunID     string
	LaunchID  string
	JobName   string
	JobHash   string
	Argv      []string
	StartedAt time.Time

	// Completion fields; nil while the run is still in flight (or the
	// launcher died before recording the exit).
	ExitCode   *int
	Duration   *time.Duration
	FinishedAt *time.Time
}

// Open creates or opens a SQLite run log at the given path.
// Applies required pragmas and the schema automatically; idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to run log: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}
