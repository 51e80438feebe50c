package scheduling

import (
	"context"
	"time"

	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/dto"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:                   ap.ID,
			PublicID:             ap.PublicID,
			StartTime:            ap.StartTime,
			EndTime:              ap.EndTime,
			Status:               ap.Status,
			PatientName:          ap.Patient.Name,
			ConsultationTypeName: ap.ConsultationType.Name,
			ConsultationColor:    ap.ConsultationType.Color,
			Modality:             ap.ConsultationType.Modality,
		})
	}
	return out
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_reference")
	}

	practice, err := uc.repo.GetPracticeByID(ctx, doctor.PracticeID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(practice.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		doctorID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
