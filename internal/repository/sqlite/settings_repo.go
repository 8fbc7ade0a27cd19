package sqlite

import (
	"context"
	"database/sql"
	"errors"

	perr "shift-tracker/internal/platform/errors"
)

type SqliteSettingsRepo struct {
	db *sql.DB
}

func NewSqliteSettingsRepo(db *sql.DB) *SqliteSettingsRepo {
	return &SqliteSettingsRepo{db: db}
}

func (r *SqliteSettingsRepo) GetHourlyRate(ctx context.Context) (float64, bool, error) {
	var rate float64
	err := r.db.QueryRowContext(ctx, `SELECT hourly_rate FROM settings WHERE id = 1`).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, perr.DBWrap(err, "get hourly rate")
	}
	return rate, true, nil
}

func (r *SqliteSettingsRepo) SetHourlyRate(ctx context.Context, rate float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, hourly_rate) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET hourly_rate = excluded.hourly_rate`,
		rate,
	)
	return perr.DBWrap(err, "set hourly rate")
}
