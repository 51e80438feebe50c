package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/timezone"
)

type PracticeHandler struct {
	db *gorm.DB
}

func NewPracticeHandler(db *gorm.DB) *PracticeHandler {
	return &PracticeHandler{db: db}
}

type UpdatePracticeConfigRequest struct {
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	DefaultSlotMin    *int    `json:"default_slot_min"`
	Timezone          *string `json:"timezone"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
}

func (h *PracticeHandler) GetMePractice(c *gin.Context) {
	practiceIDVal, _ := c.Get(middleware.ContextPracticeID)
	practiceID := practiceIDVal.(uint)

	var practice models.Practice
	if err := h.db.First(&practice, practiceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "practice_not_found", "Cabinet introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_practice", "Erreur lors de la lecture du cabinet.")
		return
	}

	c.JSON(http.StatusOK, practice)
}

func (h *PracticeHandler) UpdateMePractice(c *gin.Context) {
	practiceIDVal, _ := c.Get(middleware.ContextPracticeID)
	practiceID := practiceIDVal.(uint)

	var practice models.Practice
	if err := h.db.First(&practice, practiceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "practice_not_found", "Cabinet introuvable.")
			return
		}
		httperr.Internal(c, "failed_to_get_practice", "Erreur lors de la lecture du cabinet.")
		return
	}

	var req UpdatePracticeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Le délai minimal doit être positif ou nul (minutes).")
			return
		}
		practice.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.DefaultSlotMin != nil {
		if *req.DefaultSlotMin <= 0 {
			httperr.BadRequest(c, "invalid_default_slot", "La granularité par défaut doit être positive (minutes).")
			return
		}
		practice.DefaultSlotMin = *req.DefaultSlotMin
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuseau horaire inconnu.")
			return
		}
		practice.Timezone = *req.Timezone
	}

	if req.Phone != nil {
		practice.Phone = *req.Phone
	}
	if req.Address != nil {
		practice.Address = *req.Address
	}

	if err := h.db.Save(&practice).Error; err != nil {
		httperr.Internal(c, "failed_to_update_practice", "Erreur lors de l'enregistrement du cabinet.")
		return
	}

	c.JSON(http.StatusOK, practice)
}
