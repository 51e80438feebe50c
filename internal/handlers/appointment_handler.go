package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/cache"
	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC       *scheduling.CreateAppointment
	cancelUC       *scheduling.CancelAppointment
	confirmUC      *scheduling.ConfirmAppointment
	completeUC     *scheduling.CompleteAppointment
	listByDateUC   *scheduling.ListAppointmentsByDate
	listByMonthUC  *scheduling.ListAppointmentsByMonth
	availabilityUC *scheduling.ComputeAvailability

	cache *cache.AvailabilityCache
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *scheduling.CreateAppointment,
	cancelUC *scheduling.CancelAppointment,
	confirmUC *scheduling.ConfirmAppointment,
	completeUC *scheduling.CompleteAppointment,
	listByDateUC *scheduling.ListAppointmentsByDate,
	listByMonthUC *scheduling.ListAppointmentsByMonth,
	availabilityUC *scheduling.ComputeAvailability,
	availCache *cache.AvailabilityCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		createUC:       createUC,
		cancelUC:       cancelUC,
		confirmUC:      confirmUC,
		completeUC:     completeUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
		availabilityUC: availabilityUC,
		cache:          availCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientName        string `json:"patient_name" binding:"required"`
	PatientPhone       string `json:"patient_phone" binding:"required"`
	PatientEmail       string `json:"patient_email"`
	ConsultationTypeID uint   `json:"consultation_type_id" binding:"required"`
	Date               string `json:"date" binding:"required"` // YYYY-MM-DD
	Time               string `json:"time" binding:"required"` // HH:MM
	Notes              string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_reference"):
		httperr.BadRequest(c, "invalid_reference", "Médecin ou type de consultation introuvable.")
	case httperr.IsBusiness(err, "consultation_type_disabled"):
		httperr.BadRequest(c, "consultation_type_disabled", "Ce type de consultation est désactivé.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Date ou heure invalide.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Créneau trop proche : délai minimal non respecté.")
	case httperr.IsBusiness(err, "outside_timeplan"):
		httperr.BadRequest(c, "outside_timeplan", "Hors des horaires de consultation.")
	case httperr.IsBusiness(err, "slot_blocked"):
		httperr.Conflict(c, "slot_blocked", "Créneau bloqué par un événement ou une absence.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "Créneau déjà réservé.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Rendez-vous introuvable.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Transition de statut impossible.")
	default:
		httperr.Internal(c, "appointment_failed", "Erreur lors du traitement du rendez-vous.")
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)
	practiceID := c.MustGet(middleware.ContextPracticeID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Le paramètre date est obligatoire.")
		return
	}

	var typeID uint64
	if raw := c.Query("consultation_type_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_consultation_type_id", "Type de consultation invalide.")
			return
		}
		typeID = parsed
	}

	var practice models.Practice
	if err := h.db.First(&practice, practiceID).Error; err != nil {
		httperr.Internal(c, "practice_not_found", "Cabinet introuvable.")
		return
	}

	date, err := parseDateInPractice(&practice, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	if slots, ok := h.cache.Get(c.Request.Context(), doctorID, dateStr, uint(typeID)); ok {
		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			DoctorID:           doctorID,
			ConsultationTypeID: uint(typeID),
			Date:               date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_reference") {
			httperr.BadRequest(c, "invalid_reference", "Médecin ou type de consultation introuvable.")
			return
		}
		httperr.Internal(c, "availability_failed", "Erreur lors du calcul des créneaux.")
		return
	}

	h.cache.Set(c.Request.Context(), doctorID, dateStr, uint(typeID), slots)

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		scheduling.CreateAppointmentInput{
			DoctorID:           doctorID,
			PatientName:        req.PatientName,
			PatientPhone:       req.PatientPhone,
			PatientEmail:       req.PatientEmail,
			ConsultationTypeID: req.ConsultationTypeID,
			Date:               req.Date,
			Time:               req.Time,
			Notes:              req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), doctorID, ap.StartTime.Format("2006-01-02"))

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LISTINGS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)
	practiceID := c.MustGet(middleware.ContextPracticeID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Le paramètre date est obligatoire.")
		return
	}

	var practice models.Practice
	if err := h.db.First(&practice, practiceID).Error; err != nil {
		httperr.Internal(c, "practice_not_found", "Cabinet introuvable.")
		return
	}

	date, err := parseDateInPractice(&practice, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), doctorID, date)
	if err != nil {
		httperr.Internal(c, "appointments_list_failed", "Erreur lors de la lecture des rendez-vous.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"appointments": out,
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Année invalide.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mois invalide.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), doctorID, year, month)
	if err != nil {
		httperr.Internal(c, "appointments_list_failed", "Erreur lors de la lecture des rendez-vous.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return 0, false
	}
	return uint(id), true
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), doctorID, id)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), doctorID, ap.StartTime.Format("2006-01-02"))

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), doctorID, id)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), doctorID, id)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
