package scheduling

import (
	"context"
	"time"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/audit"
	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	DoctorID uint

	PatientName  string
	PatientPhone string
	PatientEmail string

	ConsultationTypeID uint

	Date  string // "YYYY-MM-DD"
	Time  string // "HH:MM"
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Médecin + cabinet
	// --------------------------------------------------
	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_reference")
	}

	practice, err := uc.repo.GetPracticeByID(ctx, doctor.PracticeID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(practice.Timezone)

	// --------------------------------------------------
	// Date / heure dans le fuseau du cabinet
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Type de consultation
	// --------------------------------------------------
	ct, err := uc.repo.GetConsultationType(ctx, in.DoctorID, in.ConsultationTypeID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_reference")
	}
	if !ct.Enabled {
		return nil, httperr.ErrBusiness("consultation_type_disabled")
	}

	end := start.Add(time.Duration(ct.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Délai minimal de réservation
	// --------------------------------------------------
	minAdvance := ct.CanBookBeforeMin
	if minAdvance <= 0 {
		minAdvance = practice.MinAdvanceMinutes
	}
	if minAdvance <= 0 {
		minAdvance = 60
	}

	now := timezone.NowIn(practice.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// Semaine type
	// --------------------------------------------------
	day, err := uc.repo.GetTimePlanDay(ctx, in.DoctorID, int(start.Weekday()))
	if err != nil || !domain.WithinTimeplan(day, start, end, in.ConsultationTypeID, loc) {
		return nil, httperr.ErrBusiness("outside_timeplan")
	}

	// --------------------------------------------------
	// Événements bloquants et absences
	// --------------------------------------------------
	dateStr := start.Format("2006-01-02")

	events, err := uc.repo.ListBlockingEvents(ctx, in.DoctorID, dateStr)
	if err != nil {
		return nil, err
	}

	timeOffs, err := uc.repo.ListTimeOffPeriods(ctx, in.DoctorID, dateStr)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	excl := &domain.Exclusions{
		Events:   events,
		TimeOffs: timeOffs,
		Date:     dayStart,
		Loc:      loc,
	}
	if excl.Blocks(start, end) {
		return nil, httperr.ErrBusiness("slot_blocked")
	}

	// --------------------------------------------------
	// Patient (get or create)
	// --------------------------------------------------
	patient, err := uc.repo.GetOrCreatePatient(
		ctx,
		in.DoctorID,
		in.PatientName,
		in.PatientPhone,
		in.PatientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflit de rendez-vous (revalidation transactionnelle)
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		in.DoctorID,
		start,
		end,
	); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		DoctorID:           in.DoctorID,
		PatientID:          patient.ID,
		ConsultationTypeID: ct.ID,
		StartTime:          start,
		EndTime:            end,
		Status:             string(domain.InitialStatus()),
		Notes:              in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		// la contrainte EXCLUDE reste le dernier rempart
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PracticeID: practice.ID,
		DoctorID:   &in.DoctorID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
