package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/audit"
	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) cancel(
	ctx context.Context,
	ap *models.Appointment,
	now time.Time,
) (*models.Appointment, error) {

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusCancelled)
	ap.CancelledAt = &now

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}

// Execute annule un rendez-vous côté médecin.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	doctorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_reference")
	}

	practice, err := uc.repo.GetPracticeByID(ctx, doctor.PracticeID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForDoctor(ctx, appointmentID, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	ap, err = uc.cancel(ctx, ap, timezone.NowIn(practice.Timezone))
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PracticeID: practice.ID,
		DoctorID:   &doctorID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

// ExecuteByPublicID annule un rendez-vous depuis un lien patient.
func (uc *CancelAppointment) ExecuteByPublicID(
	ctx context.Context,
	publicID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	doctor, err := uc.repo.GetDoctorByID(ctx, ap.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_reference")
	}

	practice, err := uc.repo.GetPracticeByID(ctx, doctor.PracticeID)
	if err != nil {
		return nil, err
	}

	ap, err = uc.cancel(ctx, ap, timezone.NowIn(practice.Timezone))
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PracticeID: practice.ID,
		DoctorID:   &ap.DoctorID,
		Action:     "appointment_cancelled_by_patient",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
