package service

import (
	"context"
	"time"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
	"shift-tracker/internal/platform/logger"
)

// NewShift is the input for creating a shift. A nil HourlyRate takes the
// default rate handed to AddShift.
type NewShift struct {
	Start      time.Time `json:"start" validate:"required"`
	End        time.Time `json:"end" validate:"required"`
	Title      string    `json:"title" validate:"max=200"`
	Type       string    `json:"type" validate:"max=50"`
	HourlyRate *float64  `json:"hourlyRate" validate:"omitempty,gte=0"`
	IsPaid     bool      `json:"isPaid"`
	Notes      string    `json:"notes" validate:"max=4000"`
}

type ShiftServiceImpl struct {
	Repo domain.ShiftRepo
}

func NewShiftService(repo domain.ShiftRepo) *ShiftServiceImpl {
	return &ShiftServiceImpl{Repo: repo}
}

// AddShift validates and stores a shift. The default rate is copied onto the
// record so later changes to the default never reprice history.
func (s *ShiftServiceImpl) AddShift(ctx context.Context, in NewShift, defaultRate float64) (model.Shift, error) {
	rate := defaultRate
	if in.HourlyRate != nil {
		rate = *in.HourlyRate
	}
	shift := model.Shift{
		Start:      in.Start,
		End:        in.End,
		Title:      in.Title,
		Type:       in.Type,
		HourlyRate: rate,
		IsPaid:     in.IsPaid,
		Notes:      in.Notes,
	}
	if err := shift.Validate(); err != nil {
		return model.Shift{}, err
	}
	saved, err := s.Repo.AddShift(ctx, shift)
	if err != nil {
		return model.Shift{}, err
	}
	logger.C(ctx).Info().
		Int64("shift_id", saved.ID).
		Time("start", saved.Start).
		Time("end", saved.End).
		Msg("shift added")
	return saved, nil
}

// UpdateShift merges patch into the stored shift and re-checks the invariants.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, id int64, patch domain.ShiftPatch) (model.Shift, error) {
	if id <= 0 {
		return model.Shift{}, perr.InvalidArgf("invalid shift id %d", id)
	}
	current, err := s.Repo.GetShift(ctx, id)
	if err != nil {
		return model.Shift{}, err
	}
	if patch.Empty() {
		return current, nil
	}
	next := patch.Apply(current)
	if err := next.Validate(); err != nil {
		return model.Shift{}, err
	}
	if err := s.Repo.UpdateShift(ctx, next); err != nil {
		return model.Shift{}, err
	}
	return next, nil
}

func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id int64) error {
	if id <= 0 {
		return perr.InvalidArgf("invalid shift id %d", id)
	}
	return s.Repo.DeleteShift(ctx, id)
}

func (s *ShiftServiceImpl) GetShift(ctx context.Context, id int64) (model.Shift, error) {
	if id <= 0 {
		return model.Shift{}, perr.InvalidArgf("invalid shift id %d", id)
	}
	return s.Repo.GetShift(ctx, id)
}

// GetShifts returns every shift ordered by start.
func (s *ShiftServiceImpl) GetShifts(ctx context.Context) ([]model.Shift, error) {
	return s.Repo.ListShifts(ctx)
}
