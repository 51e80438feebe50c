package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/cache"
	domain "github.com/MonCabinetApps/cabinet-scheduler/internal/domain/schedule"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/httperr"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/usecase/scheduling"
)

// PublicHandler expose le parcours patient : pas d'authentification,
// tout est résolu à partir du slug du cabinet.
type PublicHandler struct {
	db *gorm.DB

	createUC       *scheduling.CreateAppointment
	cancelUC       *scheduling.CancelAppointment
	availabilityUC *scheduling.ComputeAvailability

	cache *cache.AvailabilityCache
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *scheduling.CreateAppointment,
	cancelUC *scheduling.CancelAppointment,
	availabilityUC *scheduling.ComputeAvailability,
	availCache *cache.AvailabilityCache,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		cancelUC:       cancelUC,
		availabilityUC: availabilityUC,
		cache:          availCache,
	}
}

type PublicCreateAppointmentRequest struct {
	DoctorID           uint   `json:"doctor_id" binding:"required"`
	PatientName        string `json:"patient_name" binding:"required"`
	PatientPhone       string `json:"patient_phone" binding:"required"`
	PatientEmail       string `json:"patient_email"`
	ConsultationTypeID uint   `json:"consultation_type_id" binding:"required"`
	Date               string `json:"date" binding:"required"`
	Time               string `json:"time" binding:"required"`
	Notes              string `json:"notes"`
}

func (h *PublicHandler) practiceBySlug(c *gin.Context) (*models.Practice, bool) {
	slug := c.Param("slug")

	var practice models.Practice
	if err := h.db.Where("slug = ?", slug).First(&practice).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "practice_not_found", "Cabinet introuvable.")
			return nil, false
		}
		httperr.Internal(c, "practice_lookup_failed", "Erreur lors de la recherche du cabinet.")
		return nil, false
	}

	return &practice, true
}

// doctorInPractice vérifie que le médecin demandé appartient bien au cabinet
// du slug, pour éviter de servir les données d'un autre cabinet.
func (h *PublicHandler) doctorInPractice(c *gin.Context, practice *models.Practice, doctorID uint) bool {
	var doctor models.Doctor
	if err := h.db.
		Where("id = ? AND practice_id = ?", doctorID, practice.ID).
		First(&doctor).Error; err != nil {

		httperr.NotFound(c, "doctor_not_found", "Médecin introuvable dans ce cabinet.")
		return false
	}
	return true
}

// --------- Handlers ---------

func (h *PublicHandler) GetPractice(c *gin.Context) {
	practice, ok := h.practiceBySlug(c)
	if !ok {
		return
	}

	var doctors []models.Doctor
	if err := h.db.
		Where("practice_id = ?", practice.ID).
		Order("name ASC").
		Find(&doctors).Error; err != nil {

		httperr.Internal(c, "doctors_list_failed", "Erreur lors de la lecture des médecins.")
		return
	}

	type publicDoctor struct {
		ID         uint   `json:"id"`
		Name       string `json:"name"`
		Speciality string `json:"speciality"`
	}

	out := make([]publicDoctor, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, publicDoctor{ID: d.ID, Name: d.Name, Speciality: d.Speciality})
	}

	c.JSON(http.StatusOK, gin.H{
		"name":    practice.Name,
		"slug":    practice.Slug,
		"phone":   practice.Phone,
		"address": practice.Address,
		"doctors": out,
	})
}

func (h *PublicHandler) ListConsultationTypes(c *gin.Context) {
	practice, ok := h.practiceBySlug(c)
	if !ok {
		return
	}

	doctorID, err := strconv.ParseUint(c.Query("doctor_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "Le paramètre doctor_id est obligatoire.")
		return
	}

	if !h.doctorInPractice(c, practice, uint(doctorID)) {
		return
	}

	var types []models.ConsultationType
	if err := h.db.
		Where("doctor_id = ? AND enabled = ?", uint(doctorID), true).
		Order("id ASC").
		Find(&types).Error; err != nil {

		httperr.Internal(c, "consultation_types_failed", "Erreur lors de la lecture des types de consultation.")
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	practice, ok := h.practiceBySlug(c)
	if !ok {
		return
	}

	doctorID, err := strconv.ParseUint(c.Query("doctor_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "Le paramètre doctor_id est obligatoire.")
		return
	}

	if !h.doctorInPractice(c, practice, uint(doctorID)) {
		return
	}

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

	date, err := parseDateInPractice(practice, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	if slots, ok := h.cache.Get(c.Request.Context(), uint(doctorID), dateStr, uint(typeID)); ok {
		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			DoctorID:           uint(doctorID),
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

	h.cache.Set(c.Request.Context(), uint(doctorID), dateStr, uint(typeID), slots)

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	practice, ok := h.practiceBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	if !h.doctorInPractice(c, practice, req.DoctorID) {
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		scheduling.CreateAppointmentInput{
			DoctorID:           req.DoctorID,
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

	h.cache.InvalidateDay(c.Request.Context(), req.DoctorID, ap.StartTime.Format("2006-01-02"))

	c.JSON(http.StatusCreated, gin.H{
		"public_id":  ap.PublicID,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}

// CancelAppointment annule depuis le lien reçu par le patient.
// Le public_id suffit à retrouver le rendez-vous, le slug ne sert qu'à l'URL.
func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	publicID, err := uuid.Parse(c.Param("public_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_public_id", "Identifiant de rendez-vous invalide.")
		return
	}

	ap, err := h.cancelUC.ExecuteByPublicID(c.Request.Context(), publicID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), ap.DoctorID, ap.StartTime.Format("2006-01-02"))

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
