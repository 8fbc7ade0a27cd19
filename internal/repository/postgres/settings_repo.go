package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shift-tracker/internal/domain"
	perr "shift-tracker/internal/platform/errors"
)

type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

func (r *SettingsRepo) GetHourlyRate(ctx context.Context) (float64, bool, error) {
	var rate float64
	err := r.pool.QueryRow(ctx, `SELECT hourly_rate FROM settings WHERE id = 1`).Scan(&rate)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, perr.DBWrap(err, "get hourly rate")
	}
	return rate, true, nil
}

func (r *SettingsRepo) SetHourlyRate(ctx context.Context, rate float64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO settings (id, hourly_rate) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET hourly_rate = EXCLUDED.hourly_rate`,
		rate,
	)
	return perr.DBWrap(err, "set hourly rate")
}

type SubscriberRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriberRepo(pool *pgxpool.Pool) *SubscriberRepo {
	return &SubscriberRepo{pool: pool}
}

func (r *SubscriberRepo) SaveSubscriber(ctx context.Context, s domain.Subscriber) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO subscribers (chat_id, name) VALUES ($1, $2)
		 ON CONFLICT (chat_id) DO UPDATE SET name = EXCLUDED.name`,
		s.ChatID, s.Name,
	)
	return perr.DBWrap(err, "save subscriber")
}

func (r *SubscriberRepo) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.pool.Query(ctx, `SELECT chat_id, name FROM subscribers ORDER BY chat_id`)
	if err != nil {
		return nil, perr.DBWrap(err, "list subscribers")
	}
	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Subscriber, error) {
		var s domain.Subscriber
		err := row.Scan(&s.ChatID, &s.Name)
		return s, err
	})
	return subs, perr.DBWrap(err, "list subscribers")
}

func (r *SubscriberRepo) DeleteSubscriber(ctx context.Context, chatID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subscribers WHERE chat_id = $1`, chatID)
	return perr.DBWrap(err, "delete subscriber")
}
