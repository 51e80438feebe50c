package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/cache"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httpresp"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/validators"
)

type EventHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewEventHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *EventHandler {
	return &EventHandler{db: db, cache: availCache}
}

// --------- Requests ---------

type CreateEventRequest struct {
	Title             string  `json:"title" binding:"required"`
	EventType         string  `json:"event_type" binding:"omitempty,oneof=jour periode"`
	StartDate         string  `json:"start_date" binding:"required"`
	EndDate           *string `json:"end_date"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	BlockAppointments bool    `json:"block_appointments"`
}

type UpdateEventRequest struct {
	Title             *string `json:"title,omitempty"`
	StartDate         *string `json:"start_date,omitempty"`
	EndDate           *string `json:"end_date,omitempty"`
	StartTime         *string `json:"start_time,omitempty"`
	EndTime           *string `json:"end_time,omitempty"`
	BlockAppointments *bool   `json:"block_appointments,omitempty"`
}

func validateEventDates(startDate string, endDate *string, startTime, endTime string) string {
	if !validators.IsDateValid(startDate) {
		return "invalid_range"
	}
	if endDate != nil && *endDate != "" {
		if !validators.IsDateValid(*endDate) || *endDate < startDate {
			return "invalid_range"
		}
	}
	if (startTime == "") != (endTime == "") {
		return "invalid_range"
	}
	if startTime != "" {
		if !validators.IsClockValid(startTime) || !validators.IsClockValid(endTime) || startTime >= endTime {
			return "invalid_range"
		}
	}
	return ""
}

// invalide le cache de dispo pour chaque jour couvert par l'événement
func (h *EventHandler) invalidate(c *gin.Context, doctorID uint, ev *models.Event) {
	start, err := time.Parse("2006-01-02", ev.StartDate)
	if err != nil {
		return
	}
	end := start
	if ev.EndDate != nil && *ev.EndDate != "" {
		if e, err := time.Parse("2006-01-02", *ev.EndDate); err == nil {
			end = e
		}
	}

	for d, n := start, 0; !d.After(end) && n < 62; d, n = d.AddDate(0, 0, 1), n+1 {
		h.cache.InvalidateDay(c.Request.Context(), doctorID, d.Format("2006-01-02"))
	}
}

// --------- Handlers ---------

func (h *EventHandler) List(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	q := h.db.Where("doctor_id = ?", doctorID)

	if from := c.Query("from"); from != "" && validators.IsDateValid(from) {
		q = q.Where("(end_date IS NOT NULL AND end_date >= ?) OR start_date >= ?", from, from)
	}
	if to := c.Query("to"); to != "" && validators.IsDateValid(to) {
		q = q.Where("start_date <= ?", to)
	}

	var events []models.Event
	if err := q.
		Order("start_date ASC").
		Find(&events).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_events"})
		return
	}

	httpresp.List(c, events)
}

func (h *EventHandler) Create(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if code := validateEventDates(req.StartDate, req.EndDate, req.StartTime, req.EndTime); code != "" {
		httperr.BadRequest(c, code, "Dates ou heures d'événement invalides.")
		return
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = models.EventTypeJour
	}
	if req.EndDate != nil && *req.EndDate != "" && *req.EndDate != req.StartDate {
		eventType = models.EventTypePeriode
	}

	ev := models.Event{
		DoctorID:          doctorID,
		Title:             req.Title,
		EventType:         eventType,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		BlockAppointments: req.BlockAppointments,
	}

	if err := h.db.Create(&ev).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_event"})
		return
	}

	if ev.BlockAppointments {
		h.invalidate(c, doctorID, &ev)
	}

	c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) Update(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	id := c.Param("id")

	var ev models.Event
	if err := h.db.
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&ev).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "event_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_event"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	wasBlocking := ev.BlockAppointments
	before := ev

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.StartDate != nil {
		ev.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		ev.EndDate = req.EndDate
	}
	if req.StartTime != nil {
		ev.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		ev.EndTime = *req.EndTime
	}
	if req.BlockAppointments != nil {
		ev.BlockAppointments = *req.BlockAppointments
	}

	if code := validateEventDates(ev.StartDate, ev.EndDate, ev.StartTime, ev.EndTime); code != "" {
		httperr.BadRequest(c, code, "Dates ou heures d'événement invalides.")
		return
	}

	if ev.EndDate != nil && *ev.EndDate != "" && *ev.EndDate != ev.StartDate {
		ev.EventType = models.EventTypePeriode
	} else {
		ev.EventType = models.EventTypeJour
	}

	if err := h.db.Save(&ev).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_event"})
		return
	}

	if wasBlocking {
		h.invalidate(c, doctorID, &before)
	}
	if ev.BlockAppointments {
		h.invalidate(c, doctorID, &ev)
	}

	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) Delete(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	id := c.Param("id")

	var ev models.Event
	if err := h.db.
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&ev).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "event_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_event"})
		return
	}

	if err := h.db.Delete(&ev).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_event"})
		return
	}

	if ev.BlockAppointments {
		h.invalidate(c, doctorID, &ev)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
