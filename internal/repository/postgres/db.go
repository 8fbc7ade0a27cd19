package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	perr "shift-tracker/internal/platform/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS shifts (
    id BIGSERIAL PRIMARY KEY,
    start_at TIMESTAMPTZ NOT NULL,
    end_at TIMESTAMPTZ NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL DEFAULT '',
    hourly_rate DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (hourly_rate >= 0),
    is_paid BOOLEAN NOT NULL DEFAULT FALSE,
    notes TEXT NOT NULL DEFAULT '',
    CHECK (end_at > start_at)
);
CREATE INDEX IF NOT EXISTS shifts_start_at_idx ON shifts (start_at);
CREATE TABLE IF NOT EXISTS settings (
    id SMALLINT PRIMARY KEY CHECK (id = 1),
    hourly_rate DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS subscribers (
    chat_id BIGINT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT ''
);
`

// Open connects to dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "parse DATABASE_URL")
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, perr.DBWrap(err, "connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, perr.DBWrap(err, "ping")
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return perr.DBWrap(err, "migrate")
}
