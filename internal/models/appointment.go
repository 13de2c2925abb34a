package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StaffID uint  `gorm:"index" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	AddOns []Service `gorm:"many2many:appointment_add_ons;" json:"add_ons,omitempty"`

	LocationID uint     `json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location"`

	// EndTime is derived: StartTime + service occupied time (duration + buffers).
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status        string `gorm:"size:20;default:'confirmed'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'unpaid'" json:"payment_status"`

	// TotalAmount is the amount due excluding tip: service + add-ons +
	// retail lines + tax - discount. Fixed at booking, adjusted once at
	// checkout when retail lines or a discount are added.
	TotalAmount    float64 `json:"total_amount"`
	TipAmount      float64 `json:"tip_amount"`
	DiscountCode   string  `gorm:"size:50" json:"discount_code"`
	DiscountAmount float64 `json:"discount_amount"`

	Notes string `gorm:"size:255" json:"notes"`

	// RecurringGroupID links sibling occurrences of one recurring series.
	RecurringGroupID *string `gorm:"size:64;index" json:"recurring_group_id"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
