package models

import "time"

// StaffSchedule is one weekly availability rule. A rule whose StartDate and
// EndDate are the same day is a one-time override; IsBlocked inverts the rule
// into unavailability subtracted from the open windows.
type StaffSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID uint `gorm:"index" json:"staff_id"`

	// 0 = Sunday ... 6 = Saturday, matching time.Weekday.
	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	LocationID uint `json:"location_id"`

	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	IsBlocked   bool   `gorm:"default:false" json:"is_blocked"`
	BlockReason string `gorm:"size:100" json:"block_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
