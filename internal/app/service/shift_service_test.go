package service_test

import (
	"context"
	"testing"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/domain"
	perr "shift-tracker/internal/platform/errors"
)

func TestAddShiftCopiesDefaultRate(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewShiftService(repo)
	ctx := context.Background()

	saved, err := svc.AddShift(ctx, service.NewShift{
		Start: ts("2024-01-01T09:00:00Z"),
		End:   ts("2024-01-01T17:00:00Z"),
	}, 20)
	if err != nil {
		t.Fatalf("AddShift: %v", err)
	}
	if saved.ID <= 0 || saved.HourlyRate != 20 {
		t.Fatalf("saved %+v", saved)
	}

	explicit := 0.0
	free, err := svc.AddShift(ctx, service.NewShift{
		Start:      ts("2024-01-02T09:00:00Z"),
		End:        ts("2024-01-02T10:00:00Z"),
		HourlyRate: &explicit,
	}, 20)
	if err != nil {
		t.Fatalf("AddShift: %v", err)
	}
	if free.HourlyRate != 0 {
		t.Fatalf("explicit zero rate overwritten: %v", free.HourlyRate)
	}
}

func TestAddShiftRejectsInvalid(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewShiftService(repo)

	_, err := svc.AddShift(context.Background(), service.NewShift{
		Start: ts("2024-01-01T09:00:00Z"),
		End:   ts("2024-01-01T09:00:00Z"),
	}, 20)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("got %v want validation error", err)
	}
	if len(repo.shifts) != 0 {
		t.Fatalf("invalid shift stored")
	}
}

func TestUpdateShift(t *testing.T) {
	repo := newMemRepo(shift(1, "2024-01-01T09:00:00Z", "2024-01-01T17:00:00Z", 20))
	svc := service.NewShiftService(repo)
	ctx := context.Background()

	end := ts("2024-01-01T18:00:00Z")
	got, err := svc.UpdateShift(ctx, 1, domain.ShiftPatch{End: &end})
	if err != nil {
		t.Fatalf("UpdateShift: %v", err)
	}
	if got.DurationHours() != 9 || !repo.shifts[1].End.Equal(end) {
		t.Fatalf("not updated: %+v", got)
	}

	early := ts("2024-01-01T08:00:00Z")
	if _, err := svc.UpdateShift(ctx, 1, domain.ShiftPatch{End: &early}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("end before start: got %v", err)
	}
	if !repo.shifts[1].End.Equal(end) {
		t.Fatalf("rejected patch was stored")
	}

	if _, err := svc.UpdateShift(ctx, 42, domain.ShiftPatch{End: &end}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("unknown id: got %v", err)
	}
	if _, err := svc.UpdateShift(ctx, 0, domain.ShiftPatch{End: &end}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("zero id: got %v", err)
	}
}

func TestDeleteShift(t *testing.T) {
	repo := newMemRepo(shift(1, "2024-01-01T09:00:00Z", "2024-01-01T17:00:00Z", 20))
	svc := service.NewShiftService(repo)
	ctx := context.Background()

	if err := svc.DeleteShift(ctx, 1); err != nil {
		t.Fatalf("DeleteShift: %v", err)
	}
	if err := svc.DeleteShift(ctx, 1); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestSettingsSeedsFallback(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewSettingsService(repo, 20)
	ctx := context.Background()

	rate, err := svc.HourlyRate(ctx)
	if err != nil || rate != 20 {
		t.Fatalf("first read got (%v, %v)", rate, err)
	}
	if repo.rate == nil || *repo.rate != 20 {
		t.Fatalf("fallback not persisted")
	}

	if err := svc.SetHourlyRate(ctx, -1); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("negative rate: got %v", err)
	}
	if err := svc.SetHourlyRate(ctx, 22.5); err != nil {
		t.Fatalf("SetHourlyRate: %v", err)
	}
	if rate, _ := svc.HourlyRate(ctx); rate != 22.5 {
		t.Fatalf("rate got %v want 22.5", rate)
	}
}
