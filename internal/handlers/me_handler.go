package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	doctorIDVal, exists := c.Get(middleware.ContextDoctorID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "doctor_not_in_context"})
		return
	}

	doctorID, ok := doctorIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_doctor_id_type"})
		return
	}

	var doctor models.Doctor
	if err := h.db.Preload("Practice").First(&doctor, doctorID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "doctor_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor": gin.H{
			"id":          doctor.ID,
			"name":        doctor.Name,
			"email":       doctor.Email,
			"phone":       doctor.Phone,
			"speciality":  doctor.Speciality,
			"role":        doctor.Role,
			"practice_id": doctor.PracticeID,
		},
		"practice": gin.H{
			"id":       doctor.Practice.ID,
			"name":     doctor.Practice.Name,
			"slug":     doctor.Practice.Slug,
			"phone":    doctor.Practice.Phone,
			"address":  doctor.Practice.Address,
			"timezone": doctor.Practice.Timezone,
		},
	})
}
