package models

import "time"

type AppointmentPhoto struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ObjectKey string `gorm:"size:255;not null" json:"object_key"`
	URL       string `gorm:"size:512" json:"url"`

	UploadedBy uint `json:"uploaded_by"`

	CreatedAt time.Time `json:"created_at"`
}
