package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	DurationMin     int `json:"duration_min"`
	BufferBeforeMin int `gorm:"default:0" json:"buffer_before_min"`
	BufferAfterMin  int `gorm:"default:0" json:"buffer_after_min"`

	Price float64 `json:"price"`

	// IsAddOn services are never booked alone; CompatibleWith lists the
	// base services they may be attached to.
	IsAddOn        bool      `gorm:"default:false" json:"is_add_on"`
	CompatibleWith []Service `gorm:"many2many:service_add_ons;joinForeignKey:AddOnID;joinReferences:BaseServiceID" json:"compatible_with,omitempty"`

	Category string `gorm:"size:50" json:"category"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OccupiedMinutes is the full time a booking takes on the calendar:
// nominal duration plus prep/cleanup buffers.
func (s *Service) OccupiedMinutes() int {
	return s.DurationMin + s.BufferBeforeMin + s.BufferAfterMin
}
