package ledger

import (
	"context"

	"github.com/candraczapansky/software-sub012/internal/models"
)

// Repository is the persistence surface the checkout flow needs. Every
// settlement application happens under the per-appointment checkout lock, so
// implementations only need per-call atomicity.
type Repository interface {
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetLocation(
		ctx context.Context,
		id uint,
	) (*models.Location, error)

	GetProduct(
		ctx context.Context,
		id uint,
	) (*models.Product, error)

	// ListSettledPayments returns the completed payments recorded against
	// the appointment, oldest first.
	ListSettledPayments(
		ctx context.Context,
		appointmentID uint,
	) ([]models.Payment, error)

	GetPaymentByKey(
		ctx context.Context,
		idempotencyKey string,
	) (*models.Payment, error)

	// CreatePayment inserts the settlement record. A duplicate idempotency
	// key returns the duplicate_payment business error.
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Gift cards --------
	GetGiftCardByCode(
		ctx context.Context,
		code string,
	) (*models.GiftCard, error)

	// RedeemGiftCard decrements the balance and writes the redemption
	// transaction in one atomic step.
	RedeemGiftCard(
		ctx context.Context,
		card *models.GiftCard,
		appointmentID uint,
		amount float64,
	) error

	// -------- Promo codes --------
	GetPromoCodeByCode(
		ctx context.Context,
		code string,
	) (*models.PromoCode, error)

	IncrementPromoUsage(
		ctx context.Context,
		id uint,
	) error
}
