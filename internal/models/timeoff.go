package models

import "time"

// Période d'absence du médecin, bornes incluses. Toute date couverte est
// entièrement bloquée pour les nouveaux créneaux.
type TimeOffPeriod struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`

	Label     string `gorm:"size:100" json:"label"`
	StartDate string `gorm:"size:10;not null" json:"start_date"` // "YYYY-MM-DD"
	EndDate   string `gorm:"size:10;not null" json:"end_date"`

	AnnouncementsSent int `json:"announcements_sent"`

	// Compteur dénormalisé, recalculé à chaque création/mise à jour.
	// Indicatif seulement : l'exclusion relit toujours les rendez-vous réels.
	AppointmentsCount int `json:"appointments_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
