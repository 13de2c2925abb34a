package checkout

import (
	"context"
	"math"

	"github.com/candraczapansky/software-sub012/internal/audit"
	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/domain/ledger"
	"github.com/candraczapansky/software-sub012/internal/domain/promo"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

// ======================================================
// SHARED CHECKOUT CORE
// ======================================================

// Locker serializes settlements per appointment. The release func must be
// called once the settlement is persisted.
type Locker interface {
	Acquire(ctx context.Context, appointmentID uint) (func(), error)
}

type ProductInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CheckoutInput is the method-independent part of one settlement request.
// Amount is the base portion applied to the balance; TipAmount rides on top
// and never touches the balance or the tax.
type CheckoutInput struct {
	AppointmentID uint

	Amount    float64
	TipAmount float64

	// PromoCode applies a discount at checkout time. Rejected if the
	// appointment already carries one.
	PromoCode string

	// Products are retail lines rung up with the service. Only allowed on
	// the first settlement, before any payment has landed.
	Products []ProductInput

	IdempotencyKey string
	Notes          string
}

type CheckoutResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Payment     *models.Payment     `json:"payment"`

	Remaining     float64 `json:"remaining"`
	PaymentStatus string  `json:"payment_status"`

	// GiftCardRemainingBalance reports the card's own balance after a
	// gift card redemption. The appointment's remaining balance and the
	// card's are independent; the desk needs both.
	GiftCardRemainingBalance *float64 `json:"gift_card_remaining_balance,omitempty"`
}

// prepared carries everything the method-specific half needs to apply and
// persist one settlement.
type prepared struct {
	ap  *models.Appointment
	loc *models.Location
	led ledger.Ledger

	// newPromo is set when this request introduced the discount; usage is
	// counted only after the settlement sticks.
	newPromo *models.PromoCode
}

// prepare loads the appointment, rebuilds its ledger from the stored balance
// plus any retail lines and promo in this request, and replays the payments
// already settled against it.
func prepare(
	ctx context.Context,
	repo ledger.Repository,
	in CheckoutInput,
) (*prepared, error) {

	ap, err := repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrBusiness("appointment_cancelled")
	}
	if ap.PaymentStatus == string(domain.PaymentPaid) {
		return nil, httperr.ErrBusiness("already_paid")
	}

	loc, err := repo.GetLocation(ctx, ap.LocationID)
	if err != nil {
		return nil, err
	}

	payments, err := repo.ListSettledPayments(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	// Retail lines reprice the balance, so they only make sense before any
	// money has landed against it.
	if len(in.Products) > 0 && len(payments) > 0 {
		return nil, httperr.ErrBusiness("retail_after_payment")
	}

	lines, err := resolveProducts(ctx, repo, in.Products)
	if err != nil {
		return nil, err
	}

	// The stored TotalAmount is the post-discount balance; adding the
	// recorded discount back recovers the base the ledger math runs on.
	base := ap.TotalAmount + ap.DiscountAmount
	led := ledger.New(base, 0, lines, loc.TaxRate)

	pre := &prepared{ap: ap, loc: loc}

	switch {
	case in.PromoCode != "" && ap.DiscountCode != "":
		return nil, httperr.ErrBusiness("discount_already_applied")

	case in.PromoCode != "":
		pc, err := repo.GetPromoCodeByCode(ctx, in.PromoCode)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_promo_code")
		}
		res := promo.Validate(pc, ap.ServiceID, led.Subtotal(), timezone.NowIn(loc.Timezone))
		if !res.Valid {
			return nil, httperr.ErrBusiness("invalid_promo_code")
		}
		led = led.WithDiscount(pc.Code, res.DiscountAmount)
		pre.newPromo = pc

	case ap.DiscountCode != "":
		led = led.WithDiscount(ap.DiscountCode, ap.DiscountAmount)
	}

	led = led.WithTip(ap.TipAmount + in.TipAmount)

	for _, p := range payments {
		led.Settled = append(led.Settled, ledger.Settlement{
			Method:     p.Method,
			Amount:     p.Amount,
			TipPortion: p.TipAmount,
			Reference:  p.Reference,
		})
	}

	pre.led = led
	return pre, nil
}

func resolveProducts(
	ctx context.Context,
	repo ledger.Repository,
	inputs []ProductInput,
) ([]ledger.ProductLine, error) {

	if len(inputs) == 0 {
		return nil, nil
	}

	lines := make([]ledger.ProductLine, 0, len(inputs))
	for _, pi := range inputs {
		if pi.Quantity <= 0 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}
		p, err := repo.GetProduct(ctx, pi.ProductID)
		if err != nil || !p.Active {
			return nil, httperr.ErrBusiness("product_not_found")
		}
		lines = append(lines, ledger.ProductLine{
			Name:    p.Name,
			Price:   p.Price,
			Qty:     pi.Quantity,
			Taxable: p.Taxable,
		})
	}
	return lines, nil
}

// settle applies one settlement to the prepared ledger and persists the
// whole outcome: the payment row, the appointment's balance fields and, on
// full payment, the completed status.
func settle(
	ctx context.Context,
	repo ledger.Repository,
	dispatcher *audit.Dispatcher,
	pre *prepared,
	in CheckoutInput,
	method string,
	reference string,
	paymentStatus string,
) (*CheckoutResult, error) {

	s := ledger.Settlement{
		Method:     method,
		Amount:     in.Amount,
		TipPortion: in.TipAmount,
		Reference:  reference,
	}

	led := pre.led
	counted := paymentStatus == "completed"

	if counted {
		var err error
		led, err = led.Apply(s)
		if err != nil {
			return nil, err
		}
	}

	now := timezone.NowIn(pre.loc.Timezone)
	payment := &models.Payment{
		AppointmentID:  pre.ap.ID,
		ClientID:       pre.ap.ClientID,
		Amount:         in.Amount,
		TipAmount:      in.TipAmount,
		TotalAmount:    in.Amount + in.TipAmount,
		Method:         method,
		Status:         paymentStatus,
		Reference:      reference,
		IdempotencyKey: in.IdempotencyKey,
		Notes:          in.Notes,
	}
	if counted {
		payment.ProcessedAt = &now
	}

	if err := repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	ap := pre.ap
	if counted {
		ap.TotalAmount = led.AmountDue()
		ap.TipAmount = led.TipAmount
		ap.DiscountCode = led.DiscountCode
		ap.DiscountAmount = led.DiscountAmount
		ap.PaymentStatus = string(led.PaymentStatus())

		if led.PaymentStatus() == ledger.StatusPaid && ap.Status == string(domain.StatusConfirmed) {
			if err := domain.Complete(ap, now); err != nil {
				return nil, err
			}
		}

		if err := repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		if pre.newPromo != nil {
			if err := repo.IncrementPromoUsage(ctx, pre.newPromo.ID); err != nil {
				return nil, err
			}
		}
	}

	dispatcher.Dispatch(audit.Event{
		Action:   "payment_" + paymentStatus,
		Entity:   "payment",
		EntityID: &payment.ID,
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"method":         method,
			"amount":         payment.TotalAmount,
		},
	})

	return &CheckoutResult{
		Appointment:   ap,
		Payment:       payment,
		Remaining:     led.Remaining(),
		PaymentStatus: ap.PaymentStatus,
	}, nil
}

// replayIdempotent returns the original outcome when the same idempotency key
// shows up again, so client retries never double charge. The remaining
// balance is recomputed from the settled payments: a retried partial payment
// must report what is still owed, not zero.
func replayIdempotent(
	ctx context.Context,
	repo ledger.Repository,
	in CheckoutInput,
) (*CheckoutResult, bool) {

	if in.IdempotencyKey == "" {
		return nil, false
	}

	p, err := repo.GetPaymentByKey(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, false
	}

	ap, err := repo.GetAppointment(ctx, p.AppointmentID)
	if err != nil {
		return nil, false
	}

	settled, err := repo.ListSettledPayments(ctx, ap.ID)
	if err != nil {
		return nil, false
	}

	var settledTotal float64
	for _, sp := range settled {
		settledTotal += sp.Amount + sp.TipAmount
	}

	totalDue := ap.TotalAmount + ap.TipAmount
	remaining := math.Round(math.Max(0, totalDue-settledTotal)*100) / 100

	return &CheckoutResult{
		Appointment:   ap,
		Payment:       p,
		Remaining:     remaining,
		PaymentStatus: ap.PaymentStatus,
	}, true
}
