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
// INPUTS
// ======================================================

type CreateTimeOffInput struct {
	DoctorID  uint
	Label     string
	StartDate string // "YYYY-MM-DD"
	EndDate   string // "YYYY-MM-DD", borne incluse
}

// Mise à jour partielle : seuls les champs non nil sont appliqués.
type UpdateTimeOffInput struct {
	Label     *string
	StartDate *string
	EndDate   *string
}

// ======================================================
// USE CASE
// ======================================================

type ManageTimeOff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManageTimeOff(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ManageTimeOff {
	return &ManageTimeOff{
		repo:  repo,
		audit: audit,
	}
}

func parseDateRange(startDate, endDate string) error {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return httperr.ErrBusiness("invalid_range")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return httperr.ErrBusiness("invalid_range")
	}
	if end.Before(start) {
		return httperr.ErrBusiness("invalid_range")
	}
	return nil
}

// recount recalcule le compteur dénormalisé de rendez-vous couverts par la
// période. Purement indicatif : l'exclusion de disponibilité relit toujours
// les rendez-vous réels.
func (uc *ManageTimeOff) recount(
	ctx context.Context,
	p *models.TimeOffPeriod,
	loc *time.Location,
) error {

	start, _ := time.ParseInLocation("2006-01-02", p.StartDate, loc)
	end, _ := time.ParseInLocation("2006-01-02", p.EndDate, loc)
	end = end.Add(24 * time.Hour) // borne incluse

	count, err := uc.repo.CountBookedAppointmentsBetween(ctx, p.DoctorID, start, end)
	if err != nil {
		return err
	}

	p.AppointmentsCount = int(count)
	return nil
}

func (uc *ManageTimeOff) Create(
	ctx context.Context,
	in CreateTimeOffInput,
) (*models.TimeOffPeriod, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_reference")
	}

	practice, err := uc.repo.GetPracticeByID(ctx, doctor.PracticeID)
	if err != nil {
		return nil, err
	}

	if err := parseDateRange(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	p := &models.TimeOffPeriod{
		DoctorID:  in.DoctorID,
		Label:     in.Label,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}

	loc := timezone.Location(practice.Timezone)
	if err := uc.recount(ctx, p, loc); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateTimeOff(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PracticeID: practice.ID,
		DoctorID:   &in.DoctorID,
		Action:     "timeoff_created",
		Entity:     "timeoff",
		EntityID:   &p.ID,
	})

	return p, nil
}

func (uc *ManageTimeOff) Update(
	ctx context.Context,
	doctorID uint,
	timeOffID uint,
	in UpdateTimeOffInput,
) (*models.TimeOffPeriod, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_reference")
	}

	practice, err := uc.repo.GetPracticeByID(ctx, doctor.PracticeID)
	if err != nil {
		return nil, err
	}

	p, err := uc.repo.GetTimeOffForDoctor(ctx, timeOffID, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("timeoff_not_found")
	}

	if in.Label != nil {
		p.Label = *in.Label
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = *in.EndDate
	}

	if err := parseDateRange(p.StartDate, p.EndDate); err != nil {
		return nil, err
	}

	loc := timezone.Location(practice.Timezone)
	if err := uc.recount(ctx, p, loc); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateTimeOff(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PracticeID: practice.ID,
		DoctorID:   &doctorID,
		Action:     "timeoff_updated",
		Entity:     "timeoff",
		EntityID:   &p.ID,
	})

	return p, nil
}

func (uc *ManageTimeOff) Delete(
	ctx context.Context,
	doctorID uint,
	timeOffID uint,
) error {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return httperr.ErrBusiness("invalid_reference")
	}

	if _, err := uc.repo.GetTimeOffForDoctor(ctx, timeOffID, doctorID); err != nil {
		return httperr.ErrBusiness("timeoff_not_found")
	}

	if err := uc.repo.DeleteTimeOff(ctx, timeOffID, doctorID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		PracticeID: doctor.PracticeID,
		DoctorID:   &doctorID,
		Action:     "timeoff_deleted",
		Entity:     "timeoff",
		EntityID:   &timeOffID,
	})

	return nil
}
