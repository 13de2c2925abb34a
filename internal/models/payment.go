package models

import "time"

// Payment is one settlement of a single instrument against an appointment's
// balance. Amount is the base portion, TipAmount the tip portion; both count
// separately toward the ledger's conservation check.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ClientID      uint `json:"client_id"`

	Amount      float64 `json:"amount"`
	TipAmount   float64 `json:"tip_amount"`
	TotalAmount float64 `json:"total_amount"`

	Method string `gorm:"size:20;not null" json:"method"` // cash, card, terminal, gift_card
	Status string `gorm:"size:20;default:'completed'" json:"status"`

	// Reference holds the gateway transaction id or the gift card code.
	Reference string `gorm:"size:100;index" json:"reference"`

	// IdempotencyKey dedupes client retries: a second settlement attempt
	// with the same key returns the original record instead of double
	// charging. Blank keys are exempt from uniqueness; keyless split
	// payments on one appointment are routine. Enforced by a partial
	// unique index created in db.NewDB.
	IdempotencyKey string `gorm:"size:64;index" json:"idempotency_key"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ProcessedAt *time.Time `json:"processed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
