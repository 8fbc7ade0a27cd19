package sqlite

import (
	"context"
	"database/sql"

	"shift-tracker/internal/domain"
	perr "shift-tracker/internal/platform/errors"
)

type SqliteSubscriberRepo struct {
	db *sql.DB
}

func NewSqliteSubscriberRepo(db *sql.DB) *SqliteSubscriberRepo {
	return &SqliteSubscriberRepo{db: db}
}

// SaveSubscriber updates the chat's name, inserting the chat when it is new.
func (r *SqliteSubscriberRepo) SaveSubscriber(ctx context.Context, s domain.Subscriber) error {
	res, err := r.db.ExecContext(ctx, `UPDATE subscribers SET name = ? WHERE chat_id = ?`, s.Name, s.ChatID)
	if err != nil {
		return perr.DBWrap(err, "update subscriber")
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO subscribers (chat_id, name) VALUES (?, ?)`, s.ChatID, s.Name)
	return perr.DBWrap(err, "insert subscriber")
}

func (r *SqliteSubscriberRepo) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chat_id, name FROM subscribers ORDER BY chat_id`)
	if err != nil {
		return nil, perr.DBWrap(err, "list subscribers")
	}
	defer rows.Close()
	var subs []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ChatID, &s.Name); err != nil {
			return nil, perr.DBWrap(err, "scan subscriber")
		}
		subs = append(subs, s)
	}
	return subs, perr.DBWrap(rows.Err(), "list subscribers")
}

func (r *SqliteSubscriberRepo) DeleteSubscriber(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE chat_id = ?`, chatID)
	return perr.DBWrap(err, "delete subscriber")
}
