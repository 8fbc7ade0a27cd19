package domain

import (
	"context"
	"time"

	"shift-tracker/internal/model"
)

// ShiftPatch is a partial update. Nil fields are left untouched.
type ShiftPatch struct {
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	Title      *string    `json:"title,omitempty"`
	Type       *string    `json:"type,omitempty"`
	HourlyRate *float64   `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	IsPaid     *bool      `json:"isPaid,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

func (p ShiftPatch) Empty() bool {
	return p.Start == nil && p.End == nil && p.Title == nil && p.Type == nil &&
		p.HourlyRate == nil && p.IsPaid == nil && p.Notes == nil
}

// TouchesInterval reports whether the patch reschedules the shift.
func (p ShiftPatch) TouchesInterval() bool { return p.Start != nil || p.End != nil }

// Apply returns s with the patch fields copied over. The result is not validated.
func (p ShiftPatch) Apply(s model.Shift) model.Shift {
	if p.Start != nil {
		s.Start = *p.Start
	}
	if p.End != nil {
		s.End = *p.End
	}
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.HourlyRate != nil {
		s.HourlyRate = *p.HourlyRate
	}
	if p.IsPaid != nil {
		s.IsPaid = *p.IsPaid
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	return s
}

type ShiftRepo interface {
	AddShift(ctx context.Context, shift model.Shift) (model.Shift, error)
	GetShift(ctx context.Context, id int64) (model.Shift, error)
	// ListShifts returns every shift ordered by start.
	ListShifts(ctx context.Context) ([]model.Shift, error)
	UpdateShift(ctx context.Context, shift model.Shift) error
	DeleteShift(ctx context.Context, id int64) error
	// UpdateShifts applies a non-interval patch to every listed id that exists
	// and returns how many rows matched. Unknown ids are not an error.
	UpdateShifts(ctx context.Context, ids []int64, patch ShiftPatch) (int, error)
}

type SettingsRepo interface {
	// GetHourlyRate reports ok=false when no default rate was ever stored.
	GetHourlyRate(ctx context.Context) (rate float64, ok bool, err error)
	SetHourlyRate(ctx context.Context, rate float64) error
}
