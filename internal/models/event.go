package models

import "time"

const (
	EventTypeJour    = "jour"    // journée unique
	EventTypePeriode = "periode" // plage [StartDate, EndDate]
)

// Entrée d'agenda ponctuelle. Bloque les réservations si BlockAppointments.
// Sans heures, l'événement bloque la ou les journées entières.
type Event struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`

	Title     string `gorm:"size:100;not null" json:"title"`
	EventType string `gorm:"size:10;default:'jour'" json:"event_type"`

	StartDate string  `gorm:"size:10;not null" json:"start_date"` // "YYYY-MM-DD"
	EndDate   *string `gorm:"size:10" json:"end_date"`

	StartTime string `gorm:"size:5" json:"start_time"` // "HH:MM", optionnel
	EndTime   string `gorm:"size:5" json:"end_time"`

	BlockAppointments bool `json:"block_appointments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
