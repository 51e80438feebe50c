package models

import "time"

const (
	ModalityCabinet  = "cabinet"
	ModalityVisio    = "visio"
	ModalityDomicile = "domicile"
)

type ConsultationType struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Color string `gorm:"size:7" json:"color"`

	DurationMin  int `json:"duration_min"`
	RestAfterMin int `json:"rest_after_min"`

	// Délai minimal de réservation (minutes avant le début du créneau).
	// Zéro → le cabinet impose son délai par défaut.
	CanBookBeforeMin int `json:"can_book_before_min"`

	Price    float64 `json:"price"`
	Enabled  bool    `gorm:"default:true" json:"enabled"`
	Modality string  `gorm:"size:20;default:'cabinet'" json:"modality"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
