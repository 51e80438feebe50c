package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/httpresp"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
)

type ConsultationTypeHandler struct {
	db *gorm.DB
}

func NewConsultationTypeHandler(db *gorm.DB) *ConsultationTypeHandler {
	return &ConsultationTypeHandler{db: db}
}

// --------- Requests ---------

type CreateConsultationTypeRequest struct {
	Name             string  `json:"name" binding:"required"`
	Color            string  `json:"color"`
	DurationMin      int     `json:"duration_min" binding:"required,min=1"`
	RestAfterMin     int     `json:"rest_after_min" binding:"min=0"`
	CanBookBeforeMin int     `json:"can_book_before_min" binding:"min=0"`
	Price            float64 `json:"price"`
	Modality         string  `json:"modality" binding:"omitempty,oneof=cabinet visio domicile"`
}

type UpdateConsultationTypeRequest struct {
	Name             *string  `json:"name,omitempty"`
	Color            *string  `json:"color,omitempty"`
	DurationMin      *int     `json:"duration_min,omitempty"`
	RestAfterMin     *int     `json:"rest_after_min,omitempty"`
	CanBookBeforeMin *int     `json:"can_book_before_min,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	Enabled          *bool    `json:"enabled,omitempty"`
	Modality         *string  `json:"modality,omitempty" binding:"omitempty,oneof=cabinet visio domicile"`
}

// --------- Handlers ---------

func (h *ConsultationTypeHandler) List(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	enabledStr := strings.TrimSpace(c.Query("enabled"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("doctor_id = ?", doctorID)

	if enabledStr == "true" {
		q = q.Where("enabled = ?", true)
	} else if enabledStr == "false" {
		q = q.Where("enabled = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ?", like)
	}

	var types []models.ConsultationType
	if err := q.
		Order("id ASC").
		Find(&types).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_consultation_types"})
		return
	}

	httpresp.List(c, types)
}

func (h *ConsultationTypeHandler) Create(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	var req CreateConsultationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	modality := req.Modality
	if modality == "" {
		modality = models.ModalityCabinet
	}

	ct := models.ConsultationType{
		DoctorID:         doctorID,
		Name:             req.Name,
		Color:            req.Color,
		DurationMin:      req.DurationMin,
		RestAfterMin:     req.RestAfterMin,
		CanBookBeforeMin: req.CanBookBeforeMin,
		Price:            req.Price,
		Enabled:          true,
		Modality:         modality,
	}

	if err := h.db.Create(&ct).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_consultation_type"})
		return
	}

	httpresp.Created(c, ct)
}

func (h *ConsultationTypeHandler) Update(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(uint)

	id := c.Param("id")

	var ct models.ConsultationType
	if err := h.db.
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&ct).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "consultation_type_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_consultation_type"})
		return
	}

	var req UpdateConsultationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		ct.Name = *req.Name
	}
	if req.Color != nil {
		ct.Color = *req.Color
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_duration"})
			return
		}
		ct.DurationMin = *req.DurationMin
	}
	if req.RestAfterMin != nil {
		if *req.RestAfterMin < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_rest_after"})
			return
		}
		ct.RestAfterMin = *req.RestAfterMin
	}
	if req.CanBookBeforeMin != nil {
		ct.CanBookBeforeMin = *req.CanBookBeforeMin
	}
	if req.Price != nil {
		ct.Price = *req.Price
	}
	if req.Enabled != nil {
		ct.Enabled = *req.Enabled
	}
	if req.Modality != nil {
		ct.Modality = *req.Modality
	}

	if err := h.db.Save(&ct).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_consultation_type"})
		return
	}

	httpresp.OK(c, ct)
}
