package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

var _ domain.Repository = (*stubRepo)(nil)

// stubRepo est un dépôt en mémoire pour les tests de use cases.
type stubRepo struct {
	practice *models.Practice
	doctor   *models.Doctor

	types map[uint]*models.ConsultationType
	days  map[int]*models.TimePlanDay

	events       []models.Event
	timeOffs     []models.TimeOffPeriod
	appointments []models.Appointment

	patients []models.Patient
	periods  map[uint]*models.TimeOffPeriod

	bookedCount int64
	conflictErr error
	createErr   error

	createdAppointment *models.Appointment
	updatedAppointment *models.Appointment
	createdTimeOff     *models.TimeOffPeriod
	deletedTimeOffID   uint
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		practice: &models.Practice{
			ID:                1,
			Name:              "Cabinet Montparnasse",
			Slug:              "cabinet-montparnasse",
			Timezone:          "Europe/Paris",
			DefaultSlotMin:    30,
			MinAdvanceMinutes: 60,
		},
		doctor: &models.Doctor{
			ID:         1,
			PracticeID: 1,
			Name:       "Dr Martin",
			Email:      "dr.martin@example.fr",
		},
		types:   map[uint]*models.ConsultationType{},
		days:    map[int]*models.TimePlanDay{},
		periods: map[uint]*models.TimeOffPeriod{},
	}
}

func (r *stubRepo) GetPracticeByID(_ context.Context, id uint) (*models.Practice, error) {
	if r.practice == nil || r.practice.ID != id {
		return nil, errNotFound
	}
	return r.practice, nil
}

func (r *stubRepo) GetPracticeBySlug(_ context.Context, slug string) (*models.Practice, error) {
	if r.practice == nil || r.practice.Slug != slug {
		return nil, errNotFound
	}
	return r.practice, nil
}

func (r *stubRepo) GetDoctorByID(_ context.Context, id uint) (*models.Doctor, error) {
	if r.doctor == nil || r.doctor.ID != id {
		return nil, errNotFound
	}
	return r.doctor, nil
}

func (r *stubRepo) GetConsultationType(_ context.Context, doctorID, typeID uint) (*models.ConsultationType, error) {
	ct, ok := r.types[typeID]
	if !ok || ct.DoctorID != doctorID {
		return nil, errNotFound
	}
	return ct, nil
}

func (r *stubRepo) GetTimePlanDay(_ context.Context, doctorID uint, weekday int) (*models.TimePlanDay, error) {
	day, ok := r.days[weekday]
	if !ok || day.DoctorID != doctorID {
		return nil, errNotFound
	}
	return day, nil
}

func (r *stubRepo) ListBlockingEvents(_ context.Context, _ uint, date string) ([]models.Event, error) {
	var out []models.Event
	for _, ev := range r.events {
		if !ev.BlockAppointments {
			continue
		}
		end := ev.StartDate
		if ev.EndDate != nil && *ev.EndDate != "" {
			end = *ev.EndDate
		}
		if ev.StartDate <= date && date <= end {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *stubRepo) ListTimeOffPeriods(_ context.Context, _ uint, date string) ([]models.TimeOffPeriod, error) {
	var out []models.TimeOffPeriod
	for _, p := range r.timeOffs {
		if p.StartDate <= date && date <= p.EndDate {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubRepo) ListActiveAppointmentsForDay(_ context.Context, _ uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Status == "cancelled" {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *stubRepo) GetOrCreatePatient(_ context.Context, doctorID uint, name, phone, email string) (*models.Patient, error) {
	for i := range r.patients {
		if r.patients[i].Phone == phone {
			return &r.patients[i], nil
		}
	}
	p := models.Patient{
		ID:       uint(len(r.patients) + 1),
		DoctorID: doctorID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}
	r.patients = append(r.patients, p)
	return &r.patients[len(r.patients)-1], nil
}

func (r *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	ap.ID = uint(len(r.appointments) + 1)
	if ap.PublicID == uuid.Nil {
		ap.PublicID = uuid.New()
	}
	r.appointments = append(r.appointments, *ap)
	r.createdAppointment = ap
	return nil
}

func (r *stubRepo) AssertNoTimeConflict(_ context.Context, _ uint, start, end time.Time) error {
	if r.conflictErr != nil {
		return r.conflictErr
	}
	return nil
}

func (r *stubRepo) GetAppointmentForDoctor(_ context.Context, appointmentID, doctorID uint) (*models.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID == appointmentID && r.appointments[i].DoctorID == doctorID {
			return &r.appointments[i], nil
		}
	}
	return nil, errNotFound
}

func (r *stubRepo) GetAppointmentByPublicID(_ context.Context, publicID uuid.UUID) (*models.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].PublicID == publicID {
			return &r.appointments[i], nil
		}
	}
	return nil, errNotFound
}

func (r *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.updatedAppointment = ap
	return nil
}

func (r *stubRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.StartTime.Before(end) && !ap.StartTime.Before(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *stubRepo) CountBookedAppointmentsBetween(_ context.Context, _ uint, _, _ time.Time) (int64, error) {
	return r.bookedCount, nil
}

func (r *stubRepo) CreateTimeOff(_ context.Context, p *models.TimeOffPeriod) error {
	p.ID = uint(len(r.periods) + 1)
	r.periods[p.ID] = p
	r.createdTimeOff = p
	return nil
}

func (r *stubRepo) GetTimeOffForDoctor(_ context.Context, timeOffID, doctorID uint) (*models.TimeOffPeriod, error) {
	p, ok := r.periods[timeOffID]
	if !ok || p.DoctorID != doctorID {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubRepo) UpdateTimeOff(_ context.Context, p *models.TimeOffPeriod) error {
	r.periods[p.ID] = p
	return nil
}

func (r *stubRepo) DeleteTimeOff(_ context.Context, timeOffID, doctorID uint) error {
	p, ok := r.periods[timeOffID]
	if !ok || p.DoctorID != doctorID {
		return errNotFound
	}
	delete(r.periods, timeOffID)
	r.deletedTimeOffID = timeOffID
	return nil
}
