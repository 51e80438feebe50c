package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/config"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/timezone"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	PracticeName    string `json:"practice_name" binding:"required"`
	PracticeSlug    string `json:"practice_slug" binding:"required"`
	PracticePhone   string `json:"practice_phone"`
	PracticeAddress string `json:"practice_address"`
	Timezone        string `json:"timezone"`

	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Phone      string `json:"phone"`
	Speciality string `json:"speciality"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.PracticeSlug))

	var count int64
	h.db.Model(&models.Practice{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	tz := req.Timezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	practice := models.Practice{
		Name:     req.PracticeName,
		Slug:     slug,
		Phone:    req.PracticePhone,
		Address:  req.PracticeAddress,
		Timezone: tz,
	}

	if err := h.db.Create(&practice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_practice"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "Le domaine de l'adresse e-mail semble invalide.",
		})
		return
	}

	doctor := models.Doctor{
		PracticeID:   practice.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Speciality:   req.Speciality,
		Role:         "doctor",
	}

	if err := h.db.Create(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_doctor"})
		return
	}

	token, err := h.generateToken(&doctor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"doctor": gin.H{
			"id":          doctor.ID,
			"name":        doctor.Name,
			"email":       doctor.Email,
			"phone":       doctor.Phone,
			"speciality":  doctor.Speciality,
			"practice_id": doctor.PracticeID,
		},
		"practice": gin.H{
			"id":       practice.ID,
			"name":     practice.Name,
			"slug":     practice.Slug,
			"phone":    practice.Phone,
			"address":  practice.Address,
			"timezone": practice.Timezone,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var doctor models.Doctor
	if err := h.db.Preload("Practice").
		Where("email = ?", email).
		First(&doctor).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&doctor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor": gin.H{
			"id":          doctor.ID,
			"name":        doctor.Name,
			"email":       doctor.Email,
			"phone":       doctor.Phone,
			"speciality":  doctor.Speciality,
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
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(doctor *models.Doctor) (string, error) {
	claims := jwt.MapClaims{
		"sub":        doctor.ID,
		"practiceId": doctor.PracticeID,
		"role":       doctor.Role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
