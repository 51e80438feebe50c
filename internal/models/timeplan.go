package models

import (
	"time"

	"gorm.io/datatypes"
)

// Un TimePlanDay par (médecin, jour de semaine). Weekday suit time.Weekday (0 = dimanche).
type TimePlanDay struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index:idx_timeplan_doctor_weekday,unique" json:"doctor_id"`
	Weekday  int  `gorm:"index:idx_timeplan_doctor_weekday,unique" json:"weekday"`
	Active   bool `json:"active"`

	Windows []TimeSlotWindow `gorm:"constraint:OnDelete:CASCADE;" json:"windows"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fenêtre horaire d'une journée type, réservée à certains types de consultation.
// Un ensemble vide de types autorise tous les types du médecin.
type TimeSlotWindow struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	TimePlanDayID uint `gorm:"index" json:"time_plan_day_id"`

	StartTime string `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime   string `gorm:"size:5" json:"end_time"`   // "HH:MM"
	Active    bool   `json:"active"`

	ConsultationTypeIDs datatypes.JSONSlice[uint] `json:"consultation_type_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
