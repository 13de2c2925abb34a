package models

import "time"

type GiftCard struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`

	InitialAmount  float64 `json:"initial_amount"`
	CurrentBalance float64 `json:"current_balance"`

	IssuedToName  string `gorm:"size:100" json:"issued_to_name"`
	IssuedToEmail string `gorm:"size:100" json:"issued_to_email"`

	Status     string     `gorm:"size:20;default:'active'" json:"status"` // active, inactive, used, expired
	ExpiryDate *time.Time `json:"expiry_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GiftCardTransaction is the card's own trail: every redemption records the
// balance it left behind.
type GiftCardTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GiftCardID    uint  `gorm:"index" json:"gift_card_id"`
	AppointmentID *uint `json:"appointment_id"`

	Type         string  `gorm:"size:20;not null" json:"type"` // purchase, redemption, refund
	Amount       float64 `json:"amount"`
	BalanceAfter float64 `json:"balance_after"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
