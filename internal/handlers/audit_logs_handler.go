package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/validators"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List renvoie le journal d'activité du cabinet, filtrable par action,
// entité et plage de dates, paginé (50 par page, max 200).
func (h *AuditLogsHandler) List(c *gin.Context) {
	practiceID := c.MustGet(middleware.ContextPracticeID).(uint)

	q := h.db.Model(&models.AuditLog{}).Where("practice_id = ?", practiceID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if from := c.Query("from"); from != "" && validators.IsDateValid(from) {
		q = q.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" && validators.IsDateValid(to) {
		q = q.Where("created_at < ?", to+" 23:59:59")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if perPage < 1 {
		perPage = 50
	}
	if perPage > 200 {
		perPage = 200
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_audit_logs"})
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&logs).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_audit_logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":     logs,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}
