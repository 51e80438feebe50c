package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

type Repository interface {
	// -------- Practice / Doctor --------
	GetPracticeByID(
		ctx context.Context,
		id uint,
	) (*models.Practice, error)

	GetPracticeBySlug(
		ctx context.Context,
		slug string,
	) (*models.Practice, error)

	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	// -------- Consultation type --------
	GetConsultationType(
		ctx context.Context,
		doctorID uint,
		typeID uint,
	) (*models.ConsultationType, error)

	// -------- Availability reads --------
	GetTimePlanDay(
		ctx context.Context,
		doctorID uint,
		weekday int,
	) (*models.TimePlanDay, error)

	ListBlockingEvents(
		ctx context.Context,
		doctorID uint,
		date string,
	) ([]models.Event, error)

	ListTimeOffPeriods(
		ctx context.Context,
		doctorID uint,
		date string,
	) ([]models.TimeOffPeriod, error)

	ListActiveAppointmentsForDay(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		doctorID uint,
		name string,
		phone string,
		email string,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change / listing) --------
	GetAppointmentForDoctor(
		ctx context.Context,
		appointmentID uint,
		doctorID uint,
	) (*models.Appointment, error)

	GetAppointmentByPublicID(
		ctx context.Context,
		publicID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Time off --------
	CountBookedAppointmentsBetween(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) (int64, error)

	CreateTimeOff(
		ctx context.Context,
		p *models.TimeOffPeriod,
	) error

	GetTimeOffForDoctor(
		ctx context.Context,
		timeOffID uint,
		doctorID uint,
	) (*models.TimeOffPeriod, error)

	UpdateTimeOff(
		ctx context.Context,
		p *models.TimeOffPeriod,
	) error

	DeleteTimeOff(
		ctx context.Context,
		timeOffID uint,
		doctorID uint,
	) error
}
