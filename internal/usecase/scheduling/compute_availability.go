package scheduling

import (
	"context"
	"time"

	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/timezone"
)

type ComputeAvailability struct {
	repo domain.Repository
}

func NewComputeAvailability(repo domain.Repository) *ComputeAvailability {
	return &ComputeAvailability{repo: repo}
}

// Execute calcule la séquence ordonnée de créneaux {time, available} du médecin
// pour une date. Quatre étapes : expansion de la semaine type, génération des
// créneaux, exclusion (rendez-vous, événements bloquants, absences), assemblage.
//
// ConsultationTypeID == 0 → granularité par défaut du cabinet, sans repos entre
// créneaux et sans filtrage des fenêtres par type.
func (uc *ComputeAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_reference")
	}

	practice, err := uc.repo.GetPracticeByID(ctx, doctor.PracticeID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(practice.Timezone)

	slotMin := practice.DefaultSlotMin
	if slotMin <= 0 {
		slotMin = 30
	}
	duration := time.Duration(slotMin) * time.Minute
	rest := time.Duration(0)

	if in.ConsultationTypeID != 0 {
		ct, err := uc.repo.GetConsultationType(ctx, in.DoctorID, in.ConsultationTypeID)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_reference")
		}
		duration = time.Duration(ct.DurationMin) * time.Minute
		rest = time.Duration(ct.RestAfterMin) * time.Minute
	}

	weekday := int(in.Date.Weekday())

	day, err := uc.repo.GetTimePlanDay(ctx, in.DoctorID, weekday)
	if err != nil || day == nil || !day.Active {
		// pas d'horaires configurés ce jour-là : résultat vide, pas une erreur
		return []domain.Slot{}, nil
	}

	windows := domain.ExpandDay(day, in.Date, loc, in.ConsultationTypeID)
	if len(windows) == 0 {
		return []domain.Slot{}, nil
	}

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := dayStart.Add(24 * time.Hour)
	dateStr := dayStart.Format("2006-01-02")

	appointments, err := uc.repo.ListActiveAppointmentsForDay(ctx, in.DoctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	events, err := uc.repo.ListBlockingEvents(ctx, in.DoctorID, dateStr)
	if err != nil {
		return nil, err
	}

	timeOffs, err := uc.repo.ListTimeOffPeriods(ctx, in.DoctorID, dateStr)
	if err != nil {
		return nil, err
	}

	excl := &domain.Exclusions{
		Appointments: appointments,
		Events:       events,
		TimeOffs:     timeOffs,
		Date:         dayStart,
		Loc:          loc,
	}

	return domain.BuildSlots(windows, duration, rest, excl), nil
}
