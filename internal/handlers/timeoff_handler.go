package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/cache"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httpresp"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/usecase/scheduling"
)

type TimeOffHandler struct {
	db     *gorm.DB
	manage *scheduling.ManageTimeOff
	cache  *cache.AvailabilityCache
}

func NewTimeOffHandler(
	db *gorm.DB,
	manage *scheduling.ManageTimeOff,
	availCache *cache.AvailabilityCache,
) *TimeOffHandler {
	return &TimeOffHandler{
		db:     db,
		manage: manage,
		cache:  availCache,
	}
}

// --------- Requests ---------

type CreateTimeOffRequest struct {
	Label     string `json:"label"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type UpdateTimeOffRequest struct {
	Label     *string `json:"label,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (h *TimeOffHandler) invalidate(c *gin.Context, doctorID uint, startDate, endDate string) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return
	}

	for d, n := start, 0; !d.After(end) && n < 62; d, n = d.AddDate(0, 0, 1), n+1 {
		h.cache.InvalidateDay(c.Request.Context(), doctorID, d.Format("2006-01-02"))
	}
}

func mapTimeOffError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_range"):
		httperr.BadRequest(c, "invalid_range", "La date de début doit précéder la date de fin.")
	case httperr.IsBusiness(err, "timeoff_not_found"):
		httperr.NotFound(c, "timeoff_not_found", "Période d'absence introuvable.")
	case httperr.IsBusiness(err, "invalid_reference"):
		httperr.BadRequest(c, "invalid_reference", "Médecin introuvable.")
	default:
		httperr.Internal(c, "timeoff_failed", "Erreur lors du traitement de l'absence.")
	}
}

// --------- Handlers ---------

func (h *TimeOffHandler) List(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	var periods []models.TimeOffPeriod
	if err := h.db.
		Where("doctor_id = ?", doctorID).
		Order("start_date ASC").
		Find(&periods).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_timeoff"})
		return
	}

	httpresp.List(c, periods)
}

func (h *TimeOffHandler) Create(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	var req CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	p, err := h.manage.Create(c.Request.Context(), scheduling.CreateTimeOffInput{
		DoctorID:  doctorID,
		Label:     req.Label,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		mapTimeOffError(c, err)
		return
	}

	h.invalidate(c, doctorID, p.StartDate, p.EndDate)

	c.JSON(http.StatusCreated, p)
}

func (h *TimeOffHandler) Update(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	var req UpdateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	before, err := h.manage.Update(c.Request.Context(), doctorID, uint(id), scheduling.UpdateTimeOffInput{
		Label:     req.Label,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		mapTimeOffError(c, err)
		return
	}

	h.invalidate(c, doctorID, before.StartDate, before.EndDate)

	c.JSON(http.StatusOK, before)
}

func (h *TimeOffHandler) Delete(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return
	}

	var p models.TimeOffPeriod
	known := h.db.
		Where("id = ? AND doctor_id = ?", uint(id), doctorID).
		First(&p).Error == nil

	if err := h.manage.Delete(c.Request.Context(), doctorID, uint(id)); err != nil {
		mapTimeOffError(c, err)
		return
	}

	if known {
		h.invalidate(c, doctorID, p.StartDate, p.EndDate)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
