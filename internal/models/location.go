package models

import "time"

type Location struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	Timezone string `gorm:"size:50;default:'America/Chicago'" json:"timezone"`

	// TaxRate applies to taxable retail lines at checkout, never to
	// services or tips.
	TaxRate float64 `gorm:"default:0.08" json:"tax_rate"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
