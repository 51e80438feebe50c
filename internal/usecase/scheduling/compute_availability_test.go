package scheduling

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

// lundi 7 septembre 2026
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func mondayPlan(r *stubRepo, windows ...models.TimeSlotWindow) {
	r.days[1] = &models.TimePlanDay{
		ID:       1,
		DoctorID: 1,
		Weekday:  1,
		Active:   true,
		Windows:  windows,
	}
}

func activeWindow(start, end string, typeIDs ...uint) models.TimeSlotWindow {
	return models.TimeSlotWindow{
		StartTime:           start,
		EndTime:             end,
		Active:              true,
		ConsultationTypeIDs: datatypes.JSONSlice[uint](typeIDs),
	}
}

func consult30(r *stubRepo) {
	r.types[1] = &models.ConsultationType{
		ID:          1,
		DoctorID:    1,
		Name:        "Consultation générale",
		DurationMin: 30,
		Enabled:     true,
	}
}

func parisTime(t *testing.T, hm string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	parsed, err := time.ParseInLocation("2006-01-02 15:04", "2026-09-07 "+hm, loc)
	if err != nil {
		t.Fatalf("parse %s: %v", hm, err)
	}
	return parsed
}

func availability(t *testing.T, r *stubRepo, typeID uint) []domain.Slot {
	t.Helper()
	uc := NewComputeAvailability(r)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		DoctorID:           1,
		ConsultationTypeID: typeID,
		Date:               monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return slots
}

func TestAvailabilitySimpleMorning(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	mondayPlan(r, activeWindow("09:00", "12:00"))

	slots := availability(t, r, 1)

	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}

	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	for i, s := range slots {
		if got := s.Time.Format("15:04"); got != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], got)
		}
		if !s.Available {
			t.Errorf("slot %s should be available", want[i])
		}
	}
}

func TestAvailabilityBookedSlot(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	mondayPlan(r, activeWindow("09:00", "12:00"))

	r.appointments = []models.Appointment{{
		ID:        1,
		DoctorID:  1,
		StartTime: parisTime(t, "10:00"),
		EndTime:   parisTime(t, "10:30"),
		Status:    "scheduled",
	}}

	slots := availability(t, r, 1)
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}

	for _, s := range slots {
		hm := s.Time.Format("15:04")
		if hm == "10:00" && s.Available {
			t.Errorf("10:00 should be booked")
		}
		if hm != "10:00" && !s.Available {
			t.Errorf("%s should be available", hm)
		}
	}
}

func TestAvailabilityCancelledAppointmentFreesSlot(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	mondayPlan(r, activeWindow("09:00", "12:00"))

	r.appointments = []models.Appointment{{
		ID:        1,
		DoctorID:  1,
		StartTime: parisTime(t, "10:00"),
		EndTime:   parisTime(t, "10:30"),
		Status:    "cancelled",
	}}

	for _, s := range availability(t, r, 1) {
		if !s.Available {
			t.Errorf("%s should be available", s.Time.Format("15:04"))
		}
	}
}

func TestAvailabilityTimeOffKeepsSlotsButUnavailable(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	mondayPlan(r, activeWindow("09:00", "12:00"))

	r.timeOffs = []models.TimeOffPeriod{{
		DoctorID:  1,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-14",
	}}

	slots := availability(t, r, 1)
	if len(slots) != 6 {
		t.Fatalf("time off must not remove slots, expected 6, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Available {
			t.Errorf("%s should be unavailable during time off", s.Time.Format("15:04"))
		}
	}
}

func TestAvailabilityRestBetweenSlots(t *testing.T) {
	r := newStubRepo()
	r.types[2] = &models.ConsultationType{
		ID:           2,
		DoctorID:     1,
		Name:         "Bilan complet",
		DurationMin:  40,
		RestAfterMin: 10,
		Enabled:      true,
	}
	mondayPlan(r, activeWindow("09:00", "10:00"))

	slots := availability(t, r, 2)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if got := slots[0].Time.Format("15:04"); got != "09:00" {
		t.Errorf("expected 09:00, got %s", got)
	}
}

func TestAvailabilityNoTimeplanDay(t *testing.T) {
	r := newStubRepo()
	consult30(r)

	slots := availability(t, r, 1)
	if slots == nil {
		t.Fatalf("expected empty non-nil slice")
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestAvailabilityInactiveDay(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	r.days[1] = &models.TimePlanDay{
		DoctorID: 1,
		Weekday:  1,
		Active:   false,
		Windows:  []models.TimeSlotWindow{activeWindow("09:00", "12:00")},
	}

	if slots := availability(t, r, 1); len(slots) != 0 {
		t.Fatalf("inactive day should yield no slots, got %d", len(slots))
	}
}

func TestAvailabilityDefaultGranularity(t *testing.T) {
	r := newStubRepo()
	mondayPlan(r, activeWindow("09:00", "12:00"))

	// type omis : granularité par défaut du cabinet (30 min), sans repos
	slots := availability(t, r, 0)
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots at default granularity, got %d", len(slots))
	}
}

func TestAvailabilityWindowTypeFilter(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	r.types[2] = &models.ConsultationType{
		ID:          2,
		DoctorID:    1,
		Name:        "Téléconsultation",
		DurationMin: 30,
		Enabled:     true,
	}
	mondayPlan(r,
		activeWindow("09:00", "10:00", 1),
		activeWindow("10:00", "11:00", 2),
	)

	slots := availability(t, r, 1)
	if len(slots) != 2 {
		t.Fatalf("type 1 should only see its window, got %d slots", len(slots))
	}
	for _, s := range slots {
		if s.Time.Hour() != 9 {
			t.Errorf("slot %s outside the type-1 window", s.Time.Format("15:04"))
		}
	}
}

func TestAvailabilityTimedEvent(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	mondayPlan(r, activeWindow("09:00", "12:00"))

	r.events = []models.Event{{
		DoctorID:          1,
		Title:             "Réunion confrères",
		StartDate:         "2026-09-07",
		StartTime:         "10:00",
		EndTime:           "11:00",
		BlockAppointments: true,
	}}

	for _, s := range availability(t, r, 1) {
		hm := s.Time.Format("15:04")
		blocked := hm == "10:00" || hm == "10:30"
		if blocked == s.Available {
			t.Errorf("slot %s: available=%v", hm, s.Available)
		}
	}
}

func TestAvailabilityFullDayEvent(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	mondayPlan(r, activeWindow("09:00", "12:00"))

	r.events = []models.Event{{
		DoctorID:          1,
		Title:             "Formation",
		StartDate:         "2026-09-07",
		BlockAppointments: true,
	}}

	for _, s := range availability(t, r, 1) {
		if s.Available {
			t.Errorf("%s should be blocked by the full-day event", s.Time.Format("15:04"))
		}
	}
}

func TestAvailabilityNonBlockingEventIgnored(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	mondayPlan(r, activeWindow("09:00", "12:00"))

	r.events = []models.Event{{
		DoctorID:          1,
		Title:             "Rappel administratif",
		StartDate:         "2026-09-07",
		BlockAppointments: false,
	}}

	for _, s := range availability(t, r, 1) {
		if !s.Available {
			t.Errorf("non-blocking event must not block %s", s.Time.Format("15:04"))
		}
	}
}

func TestAvailabilityIdempotent(t *testing.T) {
	r := newStubRepo()
	consult30(r)
	mondayPlan(r, activeWindow("09:00", "12:00"))

	first := availability(t, r, 1)
	second := availability(t, r, 1)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Time.Equal(second[i].Time) || first[i].Available != second[i].Available {
			t.Errorf("slot %d differs between runs", i)
		}
	}
}

func TestAvailabilityUnknownDoctor(t *testing.T) {
	r := newStubRepo()
	uc := NewComputeAvailability(r)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		DoctorID: 99,
		Date:     monday,
	})
	if !httperr.IsBusiness(err, "invalid_reference") {
		t.Fatalf("expected invalid_reference, got %v", err)
	}
}

func TestAvailabilityUnknownConsultationType(t *testing.T) {
	r := newStubRepo()
	mondayPlan(r, activeWindow("09:00", "12:00"))

	uc := NewComputeAvailability(r)
	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		DoctorID:           1,
		ConsultationTypeID: 42,
		Date:               monday,
	})
	if !httperr.IsBusiness(err, "invalid_reference") {
		t.Fatalf("expected invalid_reference, got %v", err)
	}
}
