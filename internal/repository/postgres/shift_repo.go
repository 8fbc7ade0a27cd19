package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
)

const shiftColumns = `id, start_at, end_at, title, type, hourly_rate, is_paid, notes`

type ShiftRepo struct {
	pool *pgxpool.Pool
}

func NewShiftRepo(pool *pgxpool.Pool) *ShiftRepo {
	return &ShiftRepo{pool: pool}
}

func (r *ShiftRepo) AddShift(ctx context.Context, s model.Shift) (model.Shift, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO shifts (start_at, end_at, title, type, hourly_rate, is_paid, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		s.Start.UTC(), s.End.UTC(), s.Title, s.Type, s.HourlyRate, s.IsPaid, s.Notes,
	).Scan(&s.ID)
	if err != nil {
		return model.Shift{}, perr.DBWrap(err, "insert shift")
	}
	return s, nil
}

func (r *ShiftRepo) GetShift(ctx context.Context, id int64) (model.Shift, error) {
	s, err := scanShift(r.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Shift{}, perr.NotFoundf("shift %d not found", id)
	}
	if err != nil {
		return model.Shift{}, perr.DBWrap(err, "get shift")
	}
	return s, nil
}

func (r *ShiftRepo) ListShifts(ctx context.Context) ([]model.Shift, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY start_at, id`)
	if err != nil {
		return nil, perr.DBWrap(err, "list shifts")
	}
	defer rows.Close()

	shifts := make([]model.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, perr.DBWrap(err, "scan shift")
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.DBWrap(err, "list shifts")
	}
	return shifts, nil
}

func (r *ShiftRepo) UpdateShift(ctx context.Context, s model.Shift) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE shifts SET start_at = $1, end_at = $2, title = $3, type = $4, hourly_rate = $5, is_paid = $6, notes = $7
		 WHERE id = $8`,
		s.Start.UTC(), s.End.UTC(), s.Title, s.Type, s.HourlyRate, s.IsPaid, s.Notes, s.ID,
	)
	if err != nil {
		return perr.DBWrap(err, "update shift")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("shift %d not found", s.ID)
	}
	return nil
}

func (r *ShiftRepo) DeleteShift(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return perr.DBWrap(err, "delete shift")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("shift %d not found", id)
	}
	return nil
}

// UpdateShifts patches every listed row in one statement.
func (r *ShiftRepo) UpdateShifts(ctx context.Context, ids []int64, p domain.ShiftPatch) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	if p.Start != nil {
		add("start_at", p.Start.UTC())
	}
	if p.End != nil {
		add("end_at", p.End.UTC())
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Type != nil {
		add("type", *p.Type)
	}
	if p.HourlyRate != nil {
		add("hourly_rate", *p.HourlyRate)
	}
	if p.IsPaid != nil {
		add("is_paid", *p.IsPaid)
	}
	if p.Notes != nil {
		add("notes", *p.Notes)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, ids)
	q := `UPDATE shifts SET ` + strings.Join(sets, ", ") + ` WHERE id = ANY($` + strconv.Itoa(len(args)) + `)`

	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return 0, perr.DBWrap(err, "bulk update shifts")
	}
	return int(tag.RowsAffected()), nil
}

func scanShift(row pgx.Row) (model.Shift, error) {
	var s model.Shift
	err := row.Scan(&s.ID, &s.Start, &s.End, &s.Title, &s.Type, &s.HourlyRate, &s.IsPaid, &s.Notes)
	s.Start, s.End = s.Start.UTC(), s.End.UTC()
	return s, err
}
