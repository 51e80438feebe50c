package scheduling

import (
	"context"
	"testing"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/audit"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

func timeOffUC(r *stubRepo) *ManageTimeOff {
	return NewManageTimeOff(r, audit.NewDispatcher(nil))
}

func TestCreateTimeOff(t *testing.T) {
	r := newStubRepo()
	r.bookedCount = 3

	p, err := timeOffUC(r).Create(context.Background(), CreateTimeOffInput{
		DoctorID:  1,
		Label:     "Congés d'été",
		StartDate: "2026-08-01",
		EndDate:   "2026-08-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.AppointmentsCount != 3 {
		t.Errorf("expected 3 covered appointments, got %d", p.AppointmentsCount)
	}
	if r.createdTimeOff == nil {
		t.Fatalf("time off not persisted")
	}
}

func TestCreateTimeOffSingleDay(t *testing.T) {
	r := newStubRepo()

	p, err := timeOffUC(r).Create(context.Background(), CreateTimeOffInput{
		DoctorID:  1,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-01",
	})
	if err != nil {
		t.Fatalf("single-day period should be valid: %v", err)
	}
	if p.StartDate != p.EndDate {
		t.Errorf("bounds should match")
	}
}

func TestCreateTimeOffInvalidRange(t *testing.T) {
	r := newStubRepo()

	cases := []CreateTimeOffInput{
		{DoctorID: 1, StartDate: "2026-08-15", EndDate: "2026-08-01"},
		{DoctorID: 1, StartDate: "01/08/2026", EndDate: "2026-08-15"},
		{DoctorID: 1, StartDate: "2026-08-01", EndDate: ""},
	}

	for i, in := range cases {
		if _, err := timeOffUC(r).Create(context.Background(), in); !httperr.IsBusiness(err, "invalid_range") {
			t.Errorf("case %d: expected invalid_range, got %v", i, err)
		}
	}
}

func TestUpdateTimeOffRecounts(t *testing.T) {
	r := newStubRepo()
	r.periods[1] = &models.TimeOffPeriod{
		ID:        1,
		DoctorID:  1,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-05",
	}
	r.bookedCount = 2

	end := "2026-08-20"
	p, err := timeOffUC(r).Update(context.Background(), 1, 1, UpdateTimeOffInput{
		EndDate: &end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.EndDate != "2026-08-20" {
		t.Errorf("end date not applied")
	}
	if p.AppointmentsCount != 2 {
		t.Errorf("counter should have been recomputed, got %d", p.AppointmentsCount)
	}
}

func TestUpdateTimeOffNotFound(t *testing.T) {
	r := newStubRepo()

	_, err := timeOffUC(r).Update(context.Background(), 1, 99, UpdateTimeOffInput{})
	if !httperr.IsBusiness(err, "timeoff_not_found") {
		t.Fatalf("expected timeoff_not_found, got %v", err)
	}
}

func TestUpdateTimeOffRejectsInvertedRange(t *testing.T) {
	r := newStubRepo()
	r.periods[1] = &models.TimeOffPeriod{
		ID:        1,
		DoctorID:  1,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-05",
	}

	start := "2026-08-10"
	_, err := timeOffUC(r).Update(context.Background(), 1, 1, UpdateTimeOffInput{
		StartDate: &start,
	})
	if !httperr.IsBusiness(err, "invalid_range") {
		t.Fatalf("expected invalid_range, got %v", err)
	}
}

func TestDeleteTimeOff(t *testing.T) {
	r := newStubRepo()
	r.periods[1] = &models.TimeOffPeriod{
		ID:        1,
		DoctorID:  1,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-05",
	}

	if err := timeOffUC(r).Delete(context.Background(), 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.deletedTimeOffID != 1 {
		t.Errorf("period 1 should have been deleted")
	}
}

func TestDeleteTimeOffNotFound(t *testing.T) {
	r := newStubRepo()

	err := timeOffUC(r).Delete(context.Background(), 1, 99)
	if !httperr.IsBusiness(err, "timeoff_not_found") {
		t.Fatalf("expected timeoff_not_found, got %v", err)
	}
}

func TestDeleteTimeOffWrongDoctor(t *testing.T) {
	r := newStubRepo()
	r.periods[1] = &models.TimeOffPeriod{
		ID:        1,
		DoctorID:  2,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-05",
	}

	err := timeOffUC(r).Delete(context.Background(), 1, 1)
	if !httperr.IsBusiness(err, "timeoff_not_found") {
		t.Fatalf("expected timeoff_not_found, got %v", err)
	}
}
