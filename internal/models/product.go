package models

import "time"

// Product is a retail item sold at checkout alongside the service.
type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string  `gorm:"size:100;not null" json:"name"`
	Price float64 `json:"price"`

	// Taxable lines get the location's tax rate applied at checkout.
	Taxable bool `gorm:"default:true" json:"taxable"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
