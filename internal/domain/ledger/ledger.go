package ledger

import (
	"math"

	"github.com/candraczapansky/software-sub012/internal/httperr"
)

// Payment instruments accepted against an appointment's balance.
const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTerminal = "terminal"
	MethodGiftCard = "gift_card"
)

// OverpayTolerance absorbs rounding: a settlement may exceed the balance by
// at most this much and still be accepted as exactly satisfying it. Anything
// beyond is rejected, never clamped.
const OverpayTolerance = 0.01

// ProductLine is one retail line added at checkout.
type ProductLine struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Qty     int     `json:"qty"`
	Taxable bool    `json:"taxable"`
}

// Settlement is one instrument application. Amount is the base portion,
// TipPortion the tip riding on top; both are conserved independently.
type Settlement struct {
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"`
	TipPortion float64 `json:"tip_portion"`
	Reference  string  `json:"reference"`
}

// Ledger is an immutable value describing everything owed and settled on one
// appointment. All transitions return a new value; there are no mutable
// processing flags to forget to reset.
type Ledger struct {
	ServiceAmount float64
	AddOnAmount   float64
	Products      []ProductLine
	TaxRate       float64

	DiscountCode   string
	DiscountAmount float64

	TipAmount float64

	Settled []Settlement
}

func New(serviceAmount, addOnAmount float64, products []ProductLine, taxRate float64) Ledger {
	return Ledger{
		ServiceAmount: serviceAmount,
		AddOnAmount:   addOnAmount,
		Products:      products,
		TaxRate:       taxRate,
	}
}

// Subtotal is the pre-discount, pre-tax base: service + add-ons + retail.
func (l Ledger) Subtotal() float64 {
	return round2(l.ServiceAmount + l.AddOnAmount + l.productSubtotal())
}

func (l Ledger) productSubtotal() float64 {
	var sum float64
	for _, p := range l.Products {
		sum += p.Price * float64(p.Qty)
	}
	return sum
}

// ProductTax applies the configured rate to taxable retail lines only. Tax is
// additive to the amount due and is never discounted.
func (l Ledger) ProductTax() float64 {
	var tax float64
	for _, p := range l.Products {
		if p.Taxable {
			tax += p.Price * float64(p.Qty) * l.TaxRate
		}
	}
	return round2(tax)
}

// WithDiscount applies a validated promo discount, capped at the subtotal so
// the amount due can never go negative.
func (l Ledger) WithDiscount(code string, amount float64) Ledger {
	if amount < 0 {
		amount = 0
	}
	if sub := l.Subtotal(); amount > sub {
		amount = sub
	}
	l.DiscountCode = code
	l.DiscountAmount = round2(amount)
	return l
}

// DiscountedBase is the tip basis: subtotal minus discount, floored at zero.
// Tips are never computed on tax.
func (l Ledger) DiscountedBase() float64 {
	return round2(math.Max(0, l.Subtotal()-l.DiscountAmount))
}

func (l Ledger) WithTip(amount float64) Ledger {
	if amount < 0 {
		amount = 0
	}
	l.TipAmount = round2(amount)
	return l
}

// WithTipPercent computes the tip on the discounted base.
func (l Ledger) WithTipPercent(percent float64) Ledger {
	return l.WithTip(l.DiscountedBase() * percent / 100)
}

// AmountDue excludes tip: discounted base plus product tax.
func (l Ledger) AmountDue() float64 {
	return round2(l.DiscountedBase() + l.ProductTax())
}

// TotalDue is everything owed including tip.
func (l Ledger) TotalDue() float64 {
	return round2(l.AmountDue() + l.TipAmount)
}

// SettledTotal sums base and tip portions of every settlement so far.
func (l Ledger) SettledTotal() float64 {
	var sum float64
	for _, s := range l.Settled {
		sum += s.Amount + s.TipPortion
	}
	return round2(sum)
}

// Remaining is the balance still owed, never negative.
func (l Ledger) Remaining() float64 {
	return round2(math.Max(0, l.TotalDue()-l.SettledTotal()))
}

// Apply records one settlement and returns the new ledger. It rejects
// non-positive amounts and anything that would overshoot the balance beyond
// the rounding tolerance.
func (l Ledger) Apply(s Settlement) (Ledger, error) {
	if s.Amount+s.TipPortion <= 0 {
		return l, httperr.ErrBusiness("invalid_amount")
	}
	if s.Method == "" {
		return l, httperr.ErrBusiness("invalid_method")
	}

	newTotal := l.SettledTotal() + s.Amount + s.TipPortion
	if newTotal > l.TotalDue()+OverpayTolerance {
		return l, httperr.ErrBusiness("overpayment")
	}

	settled := make([]Settlement, len(l.Settled), len(l.Settled)+1)
	copy(settled, l.Settled)
	l.Settled = append(settled, s)
	return l, nil
}

type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

// PaymentStatus derives the appointment's payment state from the settled sum.
// A balance within the tolerance counts as fully paid.
func (l Ledger) PaymentStatus() Status {
	settled := l.SettledTotal()
	if settled <= 0 {
		return StatusUnpaid
	}
	if settled+OverpayTolerance >= l.TotalDue() {
		return StatusPaid
	}
	return StatusPartial
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
