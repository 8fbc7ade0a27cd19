package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z"

const shiftColumns = `id, start_at, end_at, title, type, hourly_rate, is_paid, notes`

type SqliteShiftRepo struct {
	db *sql.DB
}

func NewSqliteShiftRepo(db *sql.DB) *SqliteShiftRepo {
	return &SqliteShiftRepo{db: db}
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func (r *SqliteShiftRepo) AddShift(ctx context.Context, s model.Shift) (model.Shift, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO shifts (start_at, end_at, title, type, hourly_rate, is_paid, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		formatTime(s.Start),
		formatTime(s.End),
		s.Title,
		s.Type,
		s.HourlyRate,
		s.IsPaid,
		s.Notes,
	)
	if err != nil {
		return model.Shift{}, perr.DBWrap(err, "insert shift")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Shift{}, perr.DBWrap(err, "insert shift")
	}
	s.ID = id
	return s, nil
}

func (r *SqliteShiftRepo) GetShift(ctx context.Context, id int64) (model.Shift, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = ?`, id)
	s, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Shift{}, perr.NotFoundf("shift %d not found", id)
	}
	if err != nil {
		return model.Shift{}, perr.DBWrap(err, "get shift")
	}
	return s, nil
}

func (r *SqliteShiftRepo) ListShifts(ctx context.Context) ([]model.Shift, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY start_at, id`)
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

func (r *SqliteShiftRepo) UpdateShift(ctx context.Context, s model.Shift) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shifts SET start_at = ?, end_at = ?, title = ?, type = ?, hourly_rate = ?, is_paid = ?, notes = ? WHERE id = ?`,
		formatTime(s.Start),
		formatTime(s.End),
		s.Title,
		s.Type,
		s.HourlyRate,
		s.IsPaid,
		s.Notes,
		s.ID,
	)
	if err != nil {
		return perr.DBWrap(err, "update shift")
	}
	return mustAffect(res, "shift", s.ID)
}

func (r *SqliteShiftRepo) DeleteShift(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return perr.DBWrap(err, "delete shift")
	}
	return mustAffect(res, "shift", id)
}

// bulkChunk keeps each statement well under SQLite's bound-variable limit.
const bulkChunk = 500

// UpdateShifts sets the patched columns on every listed row. Ids are bound in
// chunks inside one transaction; unknown ids match nothing.
func (r *SqliteShiftRepo) UpdateShifts(ctx context.Context, ids []int64, p domain.ShiftPatch) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	sets, setArgs := patchAssignments(p)
	if len(sets) == 0 {
		return 0, nil
	}
	prefix := `UPDATE shifts SET ` + strings.Join(sets, ", ") + ` WHERE id IN (`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, perr.DBWrap(err, "bulk update shifts")
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	for lo := 0; lo < len(ids); lo += bulkChunk {
		chunk := ids[lo:min(lo+bulkChunk, len(ids))]
		args := append(make([]any, 0, len(setArgs)+len(chunk)), setArgs...)
		in := make([]string, len(chunk))
		for i, id := range chunk {
			in[i] = "?"
			args = append(args, id)
		}
		res, err := tx.ExecContext(ctx, prefix+strings.Join(in, ", ")+`)`, args...)
		if err != nil {
			return 0, perr.DBWrap(err, "bulk update shifts")
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, perr.DBWrap(err, "bulk update shifts")
		}
		total += n
	}
	if err := tx.Commit(); err != nil {
		return 0, perr.DBWrap(err, "bulk update shifts")
	}
	return int(total), nil
}

func patchAssignments(p domain.ShiftPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.Start != nil {
		add("start_at", formatTime(*p.Start))
	}
	if p.End != nil {
		add("end_at", formatTime(*p.End))
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
	return sets, args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShift(sc scanner) (model.Shift, error) {
	var s model.Shift
	var startStr, endStr string
	if err := sc.Scan(&s.ID, &startStr, &endStr, &s.Title, &s.Type, &s.HourlyRate, &s.IsPaid, &s.Notes); err != nil {
		return model.Shift{}, err
	}
	var err error
	if s.Start, err = time.Parse(timeLayout, startStr); err != nil {
		return model.Shift{}, err
	}
	if s.End, err = time.Parse(timeLayout, endStr); err != nil {
		return model.Shift{}, err
	}
	return s, nil
}

func mustAffect(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return perr.DBWrap(err, "rows affected")
	}
	if n == 0 {
		return perr.NotFoundf("%s %d not found", what, id)
	}
	return nil
}
