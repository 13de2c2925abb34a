package models

import "time"

type PromoCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`

	Type  string  `gorm:"size:20;not null" json:"type"` // percentage, fixed
	Value float64 `json:"value"`

	// ServiceID restricts the code to one service when set.
	ServiceID *uint   `json:"service_id"`
	MinAmount float64 `gorm:"default:0" json:"min_amount"`

	ExpirationDate *time.Time `json:"expiration_date"`
	UsageLimit     *int       `json:"usage_limit"`
	UsedCount      int        `gorm:"default:0" json:"used_count"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
