package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/candraczapansky/software-sub012/internal/domain/ledger"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
)

type CheckoutGormRepository struct {
	db *gorm.DB
}

func NewCheckoutGormRepository(db *gorm.DB) *CheckoutGormRepository {
	return &CheckoutGormRepository{db: db}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *CheckoutGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("AddOns").
		Preload("Location").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *CheckoutGormRepository) GetLocation(
	ctx context.Context,
	id uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *CheckoutGormRepository) GetProduct(
	ctx context.Context,
	id uint,
) (*models.Product, error) {

	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CheckoutGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *CheckoutGormRepository) ListSettledPayments(
	ctx context.Context,
	appointmentID uint,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ? AND status = 'completed'", appointmentID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *CheckoutGormRepository) GetPaymentByKey(
	ctx context.Context,
	idempotencyKey string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", idempotencyKey).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CheckoutGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {

	err := r.db.WithContext(ctx).Create(p).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("duplicate_payment")
	}
	return err
}

// --------------------------------------------------
// Gift cards
// --------------------------------------------------

func (r *CheckoutGormRepository) GetGiftCardByCode(
	ctx context.Context,
	code string,
) (*models.GiftCard, error) {

	var card models.GiftCard
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// RedeemGiftCard locks the card row, decrements the balance and writes the
// redemption transaction in one database transaction. Re-reads the balance
// under the lock so concurrent redemptions cannot overdraw the card.
func (r *CheckoutGormRepository) RedeemGiftCard(
	ctx context.Context,
	card *models.GiftCard,
	appointmentID uint,
	amount float64,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.GiftCard
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, card.ID).Error; err != nil {
			return err
		}

		if locked.CurrentBalance < amount {
			return httperr.ErrBusiness("insufficient_balance")
		}

		locked.CurrentBalance -= amount
		if locked.CurrentBalance == 0 {
			locked.Status = "used"
		}

		if err := tx.Save(&locked).Error; err != nil {
			return err
		}

		txRecord := models.GiftCardTransaction{
			GiftCardID:    locked.ID,
			AppointmentID: &appointmentID,
			Type:          "redemption",
			Amount:        amount,
			BalanceAfter:  locked.CurrentBalance,
		}
		if err := tx.Create(&txRecord).Error; err != nil {
			return err
		}

		*card = locked
		return nil
	})
}

// --------------------------------------------------
// Promo codes
// --------------------------------------------------

func (r *CheckoutGormRepository) GetPromoCodeByCode(
	ctx context.Context,
	code string,
) (*models.PromoCode, error) {

	var pc models.PromoCode
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&pc).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *CheckoutGormRepository) IncrementPromoUsage(
	ctx context.Context,
	id uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.PromoCode{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).
		Error
}

// Compile-time check
var _ ledger.Repository = (*CheckoutGormRepository)(nil)
