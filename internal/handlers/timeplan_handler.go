package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	schedule "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

type TimeplanHandler struct {
	db *gorm.DB
}

func NewTimeplanHandler(db *gorm.DB) *TimeplanHandler {
	return &TimeplanHandler{db: db}
}

type TimeplanWindowConfig struct {
	StartTime           string `json:"start_time" binding:"required"`
	EndTime             string `json:"end_time" binding:"required"`
	Active              bool   `json:"active"`
	ConsultationTypeIDs []uint `json:"consultation_type_ids"`
}

type TimeplanDayConfig struct {
	Weekday int                    `json:"weekday" binding:"min=0,max=6"`
	Active  bool                   `json:"active"`
	Windows []TimeplanWindowConfig `json:"windows"`
}

type TimeplanUpdateRequest struct {
	Days []TimeplanDayConfig `json:"days" binding:"required"`
}

func (h *TimeplanHandler) Get(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	var days []models.TimePlanDay
	if err := h.db.
		Preload("Windows", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("doctor_id = ?", doctorID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_timeplan"})
		return
	}

	c.JSON(http.StatusOK, days)
}

// Update remplace la semaine type complète du médecin. Chaque journée est
// validée avant écriture : bornes cohérentes, fenêtres actives sans
// chevauchement.
func (h *TimeplanHandler) Update(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	var req TimeplanUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	seen := map[int]bool{}
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Une seule journée type par jour de semaine.")
			return
		}
		seen[d.Weekday] = true

		windows := make([]schedule.WindowInput, 0, len(d.Windows))
		for _, w := range d.Windows {
			windows = append(windows, schedule.WindowInput{
				StartTime:           w.StartTime,
				EndTime:             w.EndTime,
				Active:              w.Active,
				ConsultationTypeIDs: w.ConsultationTypeIDs,
			})
		}

		if err := schedule.ValidateWindows(windows); err != nil {
			if httperr.IsBusiness(err, "overlapping_windows") {
				httperr.BadRequest(c, "overlapping_windows", "Les fenêtres actives d'une même journée ne peuvent pas se chevaucher.")
				return
			}
			httperr.BadRequest(c, "invalid_range", "Fenêtre horaire invalide (début < fin, format HH:MM).")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var dayIDs []uint
		if err := tx.Model(&models.TimePlanDay{}).
			Where("doctor_id = ?", doctorID).
			Pluck("id", &dayIDs).Error; err != nil {
			return err
		}

		if len(dayIDs) > 0 {
			if err := tx.Where("time_plan_day_id IN ?", dayIDs).
				Delete(&models.TimeSlotWindow{}).Error; err != nil {
				return err
			}
			if err := tx.Where("doctor_id = ?", doctorID).
				Delete(&models.TimePlanDay{}).Error; err != nil {
				return err
			}
		}

		for _, d := range req.Days {
			day := models.TimePlanDay{
				DoctorID: doctorID,
				Weekday:  d.Weekday,
				Active:   d.Active,
			}
			for _, w := range d.Windows {
				day.Windows = append(day.Windows, models.TimeSlotWindow{
					StartTime:           w.StartTime,
					EndTime:             w.EndTime,
					Active:              w.Active,
					ConsultationTypeIDs: datatypes.JSONSlice[uint](w.ConsultationTypeIDs),
				})
			}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_timeplan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
