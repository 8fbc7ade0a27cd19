package service

import (
	"context"
	"sort"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	perr "shift-tracker/internal/platform/errors"
	"shift-tracker/internal/platform/logger"
)

// Ledger tracks payment status. Bulk updates are best effort: ids the store
// does not know are skipped, and a partial match is still a success.
type Ledger struct {
	Repo domain.ShiftRepo
}

func NewLedger(repo domain.ShiftRepo) *Ledger {
	return &Ledger{Repo: repo}
}

// MarkPaid flags every listed shift as paid and returns how many matched.
func (l *Ledger) MarkPaid(ctx context.Context, ids []int64) (int, error) {
	paid := true
	return l.Apply(ctx, ids, domain.ShiftPatch{IsPaid: &paid})
}

// Apply writes patch to every listed shift. Rescheduling is per shift only.
func (l *Ledger) Apply(ctx context.Context, ids []int64, patch domain.ShiftPatch) (int, error) {
	if patch.TouchesInterval() {
		return 0, perr.Validationf("data", "start and end cannot be changed in bulk")
	}
	if patch.HourlyRate != nil {
		if err := model.ValidateRate(*patch.HourlyRate); err != nil {
			return 0, perr.WithField(err, "data.hourlyRate")
		}
	}
	set := idSet(ids)
	if len(set) == 0 || patch.Empty() {
		return 0, nil
	}

	n, err := l.Repo.UpdateShifts(ctx, set, patch)
	if err != nil {
		return 0, err
	}
	logger.C(ctx).Debug().
		Int("requested", len(set)).
		Int("updated", n).
		Msg("bulk shift update")
	return n, nil
}

// MarkAllPaid settles every unpaid shift.
func (l *Ledger) MarkAllPaid(ctx context.Context) (int, error) {
	shifts, err := l.Repo.ListShifts(ctx)
	if err != nil {
		return 0, err
	}
	unpaid := Unpaid(shifts)
	ids := make([]int64, 0, len(unpaid))
	for _, s := range unpaid {
		ids = append(ids, s.ID)
	}
	return l.MarkPaid(ctx, ids)
}

// UnpaidTotal is the pay owed across all time.
func UnpaidTotal(records []model.Shift) float64 {
	unpaid := Unpaid(records)
	canonical(unpaid)
	var total float64
	for _, s := range unpaid {
		total += s.Pay()
	}
	return total
}

// Unpaid returns the shifts not yet paid, in input order.
func Unpaid(records []model.Shift) []model.Shift {
	out := make([]model.Shift, 0, len(records))
	for _, s := range records {
		if !s.IsPaid {
			out = append(out, s)
		}
	}
	return out
}

// idSet drops duplicates and ids the store could never have assigned.
func idSet(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
