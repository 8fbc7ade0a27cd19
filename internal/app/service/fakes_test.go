package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
)

// memRepo is an in-memory ShiftRepo and SettingsRepo for service tests.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	shifts map[int64]model.Shift
	rate   *float64
	calls  int
}

func newMemRepo(seed ...model.Shift) *memRepo {
	r := &memRepo{shifts: map[int64]model.Shift{}}
	for _, s := range seed {
		if s.ID == 0 {
			r.nextID++
			s.ID = r.nextID
		} else if s.ID > r.nextID {
			r.nextID = s.ID
		}
		r.shifts[s.ID] = s
	}
	return r
}

func (r *memRepo) AddShift(_ context.Context, s model.Shift) (model.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	r.shifts[s.ID] = s
	return s, nil
}

func (r *memRepo) GetShift(_ context.Context, id int64) (model.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[id]
	if !ok {
		return model.Shift{}, perr.NotFoundf("shift %d not found", id)
	}
	return s, nil
}

func (r *memRepo) ListShifts(_ context.Context) ([]model.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Shift, 0, len(r.shifts))
	for _, s := range r.shifts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *memRepo) UpdateShift(_ context.Context, s model.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[s.ID]; !ok {
		return perr.NotFoundf("shift %d not found", s.ID)
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *memRepo) DeleteShift(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[id]; !ok {
		return perr.NotFoundf("shift %d not found", id)
	}
	delete(r.shifts, id)
	return nil
}

func (r *memRepo) UpdateShifts(_ context.Context, ids []int64, p domain.ShiftPatch) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	n := 0
	for _, id := range ids {
		s, ok := r.shifts[id]
		if !ok {
			continue
		}
		r.shifts[id] = p.Apply(s)
		n++
	}
	return n, nil
}

func (r *memRepo) GetHourlyRate(context.Context) (float64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rate == nil {
		return 0, false, nil
	}
	return *r.rate, true, nil
}

func (r *memRepo) SetHourlyRate(_ context.Context, rate float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rate = &rate
	return nil
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func shift(id int64, start, end string, rate float64) model.Shift {
	return model.Shift{ID: id, Start: ts(start), End: ts(end), HourlyRate: rate}
}
