package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	perr "shift-tracker/internal/platform/errors"
)

// Timestamps are stored as fixed-width UTC text so that string order is time order.
const createShiftsTable = `
CREATE TABLE IF NOT EXISTS shifts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    start_at TEXT NOT NULL,
    end_at TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL DEFAULT '',
    hourly_rate REAL NOT NULL DEFAULT 0,
    is_paid BOOLEAN NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    CHECK (end_at > start_at),
    CHECK (hourly_rate >= 0)
);
`

const createShiftsStartIndex = `
CREATE INDEX IF NOT EXISTS shifts_start_at_idx ON shifts (start_at);
`

const createSettingsTable = `
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    hourly_rate REAL NOT NULL
);
`

const createSubscribersTable = `
CREATE TABLE IF NOT EXISTS subscribers (
    chat_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL DEFAULT ''
);
`

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{
		createShiftsTable,
		createShiftsStartIndex,
		createSettingsTable,
		createSubscribersTable,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return perr.DBWrap(err, "migrate")
		}
	}
	return nil
}

// Open opens the database at path and applies migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, perr.DBWrap(err, "open")
	}
	// one writer keeps bulk updates from tripping SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
