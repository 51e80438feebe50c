package models

import "time"

type Doctor struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	PracticeID uint     `json:"practice_id"`
	Practice   Practice `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"practice"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Speciality   string `gorm:"size:100" json:"speciality"`
	Role         string `gorm:"size:20;default:'doctor'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
