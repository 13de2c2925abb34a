package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/candraczapansky/software-sub012/internal/domain/ledger"
	"github.com/candraczapansky/software-sub012/internal/gateway"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeCheckoutRepo is an in-memory ledger.Repository.
type fakeCheckoutRepo struct {
	appointments map[uint]*models.Appointment
	locations    map[uint]*models.Location
	products     map[uint]*models.Product
	giftCards    map[string]*models.GiftCard
	promos       map[string]*models.PromoCode

	payments    []*models.Payment
	cardTxns    []models.GiftCardTransaction
	promoUsage  map[uint]int
	nextPayment uint
}

func newFakeCheckoutRepo() *fakeCheckoutRepo {
	return &fakeCheckoutRepo{
		appointments: map[uint]*models.Appointment{},
		locations:    map[uint]*models.Location{},
		products:     map[uint]*models.Product{},
		giftCards:    map[string]*models.GiftCard{},
		promos:       map[string]*models.PromoCode{},
		promoUsage:   map[uint]int{},
		nextPayment:  1,
	}
}

func (f *fakeCheckoutRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeCheckoutRepo) GetLocation(_ context.Context, id uint) (*models.Location, error) {
	if loc, ok := f.locations[id]; ok {
		return loc, nil
	}
	return nil, errNotFound
}

func (f *fakeCheckoutRepo) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (f *fakeCheckoutRepo) ListSettledPayments(_ context.Context, appointmentID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.AppointmentID == appointmentID && p.Status == "completed" {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeCheckoutRepo) GetPaymentByKey(_ context.Context, key string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.IdempotencyKey == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeCheckoutRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	if p.IdempotencyKey != "" {
		for _, existing := range f.payments {
			if existing.IdempotencyKey == p.IdempotencyKey {
				return httperr.ErrBusiness("duplicate_payment")
			}
		}
	}
	p.ID = f.nextPayment
	f.nextPayment++
	cp := *p
	f.payments = append(f.payments, &cp)
	return nil
}

func (f *fakeCheckoutRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errNotFound
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeCheckoutRepo) GetGiftCardByCode(_ context.Context, code string) (*models.GiftCard, error) {
	if card, ok := f.giftCards[code]; ok {
		cp := *card
		return &cp, nil
	}
	return nil, errNotFound
}

func (f *fakeCheckoutRepo) RedeemGiftCard(_ context.Context, card *models.GiftCard, appointmentID uint, amount float64) error {
	stored, ok := f.giftCards[card.Code]
	if !ok {
		return errNotFound
	}
	if stored.CurrentBalance < amount {
		return httperr.ErrBusiness("insufficient_balance")
	}
	stored.CurrentBalance -= amount
	if stored.CurrentBalance == 0 {
		stored.Status = "used"
	}
	f.cardTxns = append(f.cardTxns, models.GiftCardTransaction{
		GiftCardID:    stored.ID,
		AppointmentID: &appointmentID,
		Type:          "redemption",
		Amount:        amount,
		BalanceAfter:  stored.CurrentBalance,
	})
	*card = *stored
	return nil
}

func (f *fakeCheckoutRepo) GetPromoCodeByCode(_ context.Context, code string) (*models.PromoCode, error) {
	if pc, ok := f.promos[code]; ok {
		return pc, nil
	}
	return nil, errNotFound
}

func (f *fakeCheckoutRepo) IncrementPromoUsage(_ context.Context, id uint) error {
	f.promoUsage[id]++
	return nil
}

var _ ledger.Repository = (*fakeCheckoutRepo)(nil)

// noopLock always grants; heldLock always reports busy.
type noopLock struct{}

func (noopLock) Acquire(context.Context, uint) (func(), error) { return func() {}, nil }

type heldLock struct{}

func (heldLock) Acquire(context.Context, uint) (func(), error) {
	return nil, httperr.ErrBusiness("checkout_busy")
}

// fakeGateway scripts charge outcomes. pendingPolls is how many status polls
// return pending before confirming.
type fakeGateway struct {
	chargeStatus gateway.Status
	pendingPolls int

	charges int
	polls   int
}

func (g *fakeGateway) Charge(_ context.Context, _ gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	g.charges++
	return &gateway.ChargeResult{
		Status:        g.chargeStatus,
		TransactionID: "txn-1",
	}, nil
}

func (g *fakeGateway) PaymentStatus(_ context.Context, _ string) (gateway.Status, error) {
	g.polls++
	if g.polls > g.pendingPolls {
		return gateway.StatusConfirmed, nil
	}
	return gateway.StatusPending, nil
}

var _ gateway.Gateway = (*fakeGateway)(nil)

// seedCheckout loads a $100 confirmed appointment at an 8% tax location.
func seedCheckout(f *fakeCheckoutRepo) {
	f.locations[1] = &models.Location{ID: 1, Timezone: "America/Chicago", TaxRate: 0.08, Active: true}
	f.appointments[1] = &models.Appointment{
		ID: 1, ClientID: 1, StaffID: 1, ServiceID: 1, LocationID: 1,
		StartTime:     time.Now().Add(-time.Hour),
		EndTime:       time.Now(),
		Status:        "confirmed",
		PaymentStatus: "unpaid",
		TotalAmount:   100,
	}
	f.products[1] = &models.Product{ID: 1, Name: "Hydrating Serum", Price: 30, Taxable: true, Active: true}
	f.products[2] = &models.Product{ID: 2, Name: "Gift Bag", Price: 10, Taxable: false, Active: true}
	f.giftCards["GC-100"] = &models.GiftCard{ID: 1, Code: "GC-100", InitialAmount: 75, CurrentBalance: 75, Status: "active"}
	f.promos["SAVE20"] = &models.PromoCode{ID: 1, Code: "SAVE20", Type: "fixed", Value: 20, Active: true}
}
