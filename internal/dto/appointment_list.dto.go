package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID       uint      `json:"id"`
	PublicID uuid.UUID `json:"public_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`

	PatientName          string `json:"patient_name"`
	ConsultationTypeName string `json:"consultation_type_name"`
	ConsultationColor    string `json:"consultation_color"`
	Modality             string `json:"modality"`
}
