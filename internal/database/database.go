package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// DB wraps the sqlite booking ledger.
type DB struct {
	*sql.DB
	logger zerolog.Logger
}

func New(path string, logger *zerolog.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serializes writers at the file level anyway; a single
	// connection avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	var componentLogger zerolog.Logger
	if logger != nil {
		componentLogger = logger.With().Str("component", "database").Logger()
	}
	componentLogger.Info().Str("path", path).Msg("database initialized")

	return &DB{DB: db, logger: componentLogger}, nil
}

func createSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            day TEXT NOT NULL,
            period TEXT NOT NULL,
            student_name TEXT NOT NULL,
            roll_number TEXT NOT NULL,
            department TEXT NOT NULL,
            purpose TEXT NOT NULL,
            email TEXT,
            booking_time DATETIME NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            week_number INTEGER NOT NULL
        )`,

		// One active booking per slot per week. The partial index is the
		// concurrency guard: a second concurrent insert for the same slot
		// fails with a unique-constraint violation instead of racing the
		// availability check. Rejected and cancelled rows do not block.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
            ON bookings(day, period, week_number)
            WHERE status IN ('pending', 'approved')`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_week ON bookings(week_number)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
