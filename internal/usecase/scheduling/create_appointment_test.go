package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/audit"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/timezone"
)

// futureBooking prépare un dépôt avec une journée type ouverte 08:00-20:00
// pour une date à deux semaines, et renvoie la date correspondante.
func futureBooking(t *testing.T, r *stubRepo) string {
	t.Helper()

	consult30(r)

	future := timezone.NowIn("Europe/Paris").AddDate(0, 0, 14)
	r.days[int(future.Weekday())] = &models.TimePlanDay{
		DoctorID: 1,
		Weekday:  int(future.Weekday()),
		Active:   true,
		Windows:  []models.TimeSlotWindow{activeWindow("08:00", "20:00")},
	}

	return future.Format("2006-01-02")
}

func createUC(r *stubRepo) *CreateAppointment {
	return NewCreateAppointment(r, audit.NewDispatcher(nil))
}

func baseInput(date string) CreateAppointmentInput {
	return CreateAppointmentInput{
		DoctorID:           1,
		PatientName:        "Jeanne Dupont",
		PatientPhone:       "0612345678",
		PatientEmail:       "jeanne@example.fr",
		ConsultationTypeID: 1,
		Date:               date,
		Time:               "10:00",
	}
}

func TestCreateAppointmentOK(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)

	ap, err := createUC(r).Execute(context.Background(), baseInput(date))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.Status != "scheduled" {
		t.Errorf("expected scheduled, got %s", ap.Status)
	}
	if !ap.EndTime.Equal(ap.StartTime.Add(30 * time.Minute)) {
		t.Errorf("end time should be start + 30min")
	}
	if r.createdAppointment == nil {
		t.Fatalf("appointment not persisted")
	}
	if len(r.patients) != 1 {
		t.Errorf("patient should have been created")
	}
}

func TestCreateAppointmentReusesPatient(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)

	r.patients = []models.Patient{
		{ID: 7, DoctorID: 1, Name: "Jeanne Dupont", Phone: "0612345678"},
	}

	ap, err := createUC(r).Execute(context.Background(), baseInput(date))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.PatientID != 7 {
		t.Errorf("expected patient 7, got %d", ap.PatientID)
	}
	if len(r.patients) != 1 {
		t.Errorf("no new patient should have been created")
	}
}

func TestCreateAppointmentTooSoon(t *testing.T) {
	r := newStubRepo()
	futureBooking(t, r)

	// dans 10 minutes : sous le délai minimal de 60
	soon := timezone.NowIn("Europe/Paris").Add(10 * time.Minute)
	in := baseInput(soon.Format("2006-01-02"))
	in.Time = soon.Format("15:04")

	_, err := createUC(r).Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("expected too_soon, got %v", err)
	}
}

func TestCreateAppointmentOutsideTimeplan(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)

	in := baseInput(date)
	in.Time = "22:00"

	_, err := createUC(r).Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "outside_timeplan") {
		t.Fatalf("expected outside_timeplan, got %v", err)
	}
}

func TestCreateAppointmentSlotBlockedByEvent(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)

	r.events = []models.Event{{
		DoctorID:          1,
		Title:             "Formation",
		StartDate:         date,
		BlockAppointments: true,
	}}

	_, err := createUC(r).Execute(context.Background(), baseInput(date))
	if !httperr.IsBusiness(err, "slot_blocked") {
		t.Fatalf("expected slot_blocked, got %v", err)
	}
}

func TestCreateAppointmentSlotBlockedByTimeOff(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)

	r.timeOffs = []models.TimeOffPeriod{{
		DoctorID:  1,
		StartDate: date,
		EndDate:   date,
	}}

	_, err := createUC(r).Execute(context.Background(), baseInput(date))
	if !httperr.IsBusiness(err, "slot_blocked") {
		t.Fatalf("expected slot_blocked, got %v", err)
	}
}

func TestCreateAppointmentTimeConflict(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)
	r.conflictErr = httperr.ErrBusiness("time_conflict")

	_, err := createUC(r).Execute(context.Background(), baseInput(date))
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}
}

func TestCreateAppointmentExclusionConstraint(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)

	// la contrainte EXCLUDE de la base se manifeste en 23P01
	r.createErr = &pgconn.PgError{Code: "23P01"}

	_, err := createUC(r).Execute(context.Background(), baseInput(date))
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict from exclusion constraint, got %v", err)
	}
}

func TestCreateAppointmentDisabledType(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)
	r.types[1].Enabled = false

	_, err := createUC(r).Execute(context.Background(), baseInput(date))
	if !httperr.IsBusiness(err, "consultation_type_disabled") {
		t.Fatalf("expected consultation_type_disabled, got %v", err)
	}
}

func TestCreateAppointmentUnknownType(t *testing.T) {
	r := newStubRepo()
	date := futureBooking(t, r)

	in := baseInput(date)
	in.ConsultationTypeID = 42

	_, err := createUC(r).Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "invalid_reference") {
		t.Fatalf("expected invalid_reference, got %v", err)
	}
}

func TestCreateAppointmentBadDate(t *testing.T) {
	r := newStubRepo()
	futureBooking(t, r)

	in := baseInput("07/09/2026")

	_, err := createUC(r).Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "invalid_date_or_time") {
		t.Fatalf("expected invalid_date_or_time, got %v", err)
	}
}
