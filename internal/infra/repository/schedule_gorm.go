package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Practice / Doctor
// --------------------------------------------------

func (r *ScheduleGormRepository) GetPracticeByID(
	ctx context.Context,
	id uint,
) (*models.Practice, error) {

	var practice models.Practice
	if err := r.db.WithContext(ctx).First(&practice, id).Error; err != nil {
		return nil, err
	}
	return &practice, nil
}

func (r *ScheduleGormRepository) GetPracticeBySlug(
	ctx context.Context,
	slug string,
) (*models.Practice, error) {

	var practice models.Practice
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&practice).Error; err != nil {
		return nil, err
	}
	return &practice, nil
}

func (r *ScheduleGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// --------------------------------------------------
// Consultation type
// --------------------------------------------------

func (r *ScheduleGormRepository) GetConsultationType(
	ctx context.Context,
	doctorID uint,
	typeID uint,
) (*models.ConsultationType, error) {

	var ct models.ConsultationType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", typeID, doctorID).
		First(&ct).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

// --------------------------------------------------
// Availability reads
// --------------------------------------------------

func (r *ScheduleGormRepository) GetTimePlanDay(
	ctx context.Context,
	doctorID uint,
	weekday int,
) (*models.TimePlanDay, error) {

	var day models.TimePlanDay
	if err := r.db.WithContext(ctx).
		Preload("Windows", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		First(&day).Error; err != nil {
		return nil, err
	}

	return &day, nil
}

func (r *ScheduleGormRepository) ListBlockingEvents(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]models.Event, error) {

	// Un événement "jour" sans date de fin ne bloque que sa date de début ;
	// un événement à plage bloque chaque jour de [start_date, end_date].
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND block_appointments = ?", doctorID, true).
		Where(
			"(end_date IS NULL AND start_date = ?) OR (end_date IS NOT NULL AND start_date <= ? AND end_date >= ?)",
			date, date, date,
		).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (r *ScheduleGormRepository) ListTimeOffPeriods(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]models.TimeOffPeriod, error) {

	var periods []models.TimeOffPeriod
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND start_date <= ? AND end_date >= ?",
			doctorID, date, date,
		).
		Order("start_date ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *ScheduleGormRepository) ListActiveAppointmentsForDay(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := activeOverlap(
		r.db.WithContext(ctx).Select("start_time", "end_time", "status"),
		doctorID, start, end,
	).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// activeOverlap restreint la requête aux rendez-vous non annulés du médecin
// qui chevauchent [start, end) (intervalle semi-ouvert).
func activeOverlap(db *gorm.DB, doctorID uint, start, end time.Time) *gorm.DB {
	return db.Where(
		"doctor_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
		doctorID, string(domain.StatusCancelled), end, start,
	)
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *ScheduleGormRepository) GetOrCreatePatient(
	ctx context.Context,
	doctorID uint,
	name string,
	phone string,
	email string,
) (*models.Patient, error) {

	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND phone = ?", doctorID, phone).
		First(&patient).Error

	if err == nil {
		return &patient, nil
	}

	patient = models.Patient{
		DoctorID: doctorID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}

	if err := r.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}

	return &patient, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// AssertNoTimeConflict est un pré-contrôle sans verrou : la contrainte EXCLUDE
// `appointments_no_overlap` reste la garde faisant foi à l'insertion.
func (r *ScheduleGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := activeOverlap(
		r.db.WithContext(ctx).Model(&models.Appointment{}),
		doctorID, start, end,
	).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

func (r *ScheduleGormRepository) GetAppointmentForDoctor(
	ctx context.Context,
	appointmentID uint,
	doctorID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", appointmentID, doctorID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) GetAppointmentByPublicID(
	ctx context.Context,
	publicID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("ConsultationType").
		Where(
			"doctor_id = ? AND start_time >= ? AND start_time < ?",
			doctorID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Time off
// --------------------------------------------------

func (r *ScheduleGormRepository) CountBookedAppointmentsBetween(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			doctorID,
			[]string{string(domain.StatusCancelled), string(domain.StatusCompleted)},
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ScheduleGormRepository) CreateTimeOff(
	ctx context.Context,
	p *models.TimeOffPeriod,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ScheduleGormRepository) GetTimeOffForDoctor(
	ctx context.Context,
	timeOffID uint,
	doctorID uint,
) (*models.TimeOffPeriod, error) {

	var p models.TimeOffPeriod
	if err := r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", timeOffID, doctorID).
		First(&p).Error; err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *ScheduleGormRepository) UpdateTimeOff(
	ctx context.Context,
	p *models.TimeOffPeriod,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ScheduleGormRepository) DeleteTimeOff(
	ctx context.Context,
	timeOffID uint,
	doctorID uint,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", timeOffID, doctorID).
		Delete(&models.TimeOffPeriod{}).Error
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
