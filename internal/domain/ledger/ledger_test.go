package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candraczapansky/software-sub012/internal/httperr"
)

func TestCheckoutScenario(t *testing.T) {
	// $100 service, SAVE20 takes $20 off, 18% tip on the discounted base,
	// then $50 cash + $44.40 card settles everything.
	l := New(100, 0, nil, 0.08).
		WithDiscount("SAVE20", 20).
		WithTipPercent(18)

	assert.Equal(t, 14.40, l.TipAmount)
	assert.Equal(t, 80.0, l.AmountDue())
	assert.Equal(t, 94.40, l.TotalDue())

	l, err := l.Apply(Settlement{Method: MethodCash, Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, StatusPartial, l.PaymentStatus())
	assert.Equal(t, 44.40, l.Remaining())

	l, err = l.Apply(Settlement{Method: MethodCard, Amount: 30, TipPortion: 14.40})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, l.PaymentStatus())
	assert.Equal(t, 0.0, l.Remaining())
}

func TestConservation(t *testing.T) {
	// any sequence of partial payments summing below the total leaves the
	// ledger partial with a positive remainder; hitting the total flips it
	// to paid with a zero remainder
	l := New(120, 30, nil, 0).WithTip(20)
	require.Equal(t, 170.0, l.TotalDue())

	var err error
	for _, amount := range []float64{40, 60, 30} {
		l, err = l.Apply(Settlement{Method: MethodCash, Amount: amount})
		require.NoError(t, err)
		assert.Equal(t, StatusPartial, l.PaymentStatus())
		assert.Greater(t, l.Remaining(), 0.0)
	}

	l, err = l.Apply(Settlement{Method: MethodGiftCard, Amount: 20, TipPortion: 20})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, l.PaymentStatus())
	assert.Equal(t, 0.0, l.Remaining())
}

func TestDiscountFloor(t *testing.T) {
	// a discount larger than the base floors at zero, and the tip is
	// computed off the floored amount
	l := New(30, 0, nil, 0).WithDiscount("BIGCODE", 50)

	assert.Equal(t, 30.0, l.DiscountAmount, "discount capped at subtotal")
	assert.Equal(t, 0.0, l.AmountDue())

	l = l.WithTipPercent(20)
	assert.Equal(t, 0.0, l.TipAmount, "tip on a floored base is zero")
}

func TestProductTax(t *testing.T) {
	products := []ProductLine{
		{Name: "Shampoo", Price: 25, Qty: 2, Taxable: true},
		{Name: "Gift bag", Price: 10, Qty: 1, Taxable: false},
	}
	l := New(100, 0, products, 0.08)

	assert.Equal(t, 160.0, l.Subtotal())
	assert.Equal(t, 4.0, l.ProductTax(), "tax only on taxable lines")
	assert.Equal(t, 164.0, l.AmountDue())

	// tax survives the discount untouched
	l = l.WithDiscount("TENOFF", 10)
	assert.Equal(t, 154.0, l.AmountDue())
	assert.Equal(t, 4.0, l.ProductTax())
}

func TestTipOnDiscountedBaseNotTax(t *testing.T) {
	products := []ProductLine{{Name: "Serum", Price: 50, Qty: 1, Taxable: true}}
	l := New(100, 0, products, 0.10).WithDiscount("SAVE50", 50).WithTipPercent(10)

	// discounted base = 150 - 50 = 100; tip ignores the $5 tax entirely
	assert.Equal(t, 10.0, l.TipAmount)
}

func TestApplyRejections(t *testing.T) {
	l := New(50, 0, nil, 0)

	_, err := l.Apply(Settlement{Method: MethodCash, Amount: 0})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	_, err = l.Apply(Settlement{Method: MethodCash, Amount: -10})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	_, err = l.Apply(Settlement{Amount: 10})
	assert.True(t, httperr.IsBusiness(err, "invalid_method"))

	// overshooting beyond the tolerance is rejected, not clamped
	_, err = l.Apply(Settlement{Method: MethodCash, Amount: 50.02})
	assert.True(t, httperr.IsBusiness(err, "overpayment"))

	// failed Apply leaves the ledger unchanged
	assert.Equal(t, 0.0, l.SettledTotal())
}

func TestOverpayTolerance(t *testing.T) {
	l := New(50, 0, nil, 0)

	l, err := l.Apply(Settlement{Method: MethodCash, Amount: 50.01})
	require.NoError(t, err, "a one cent overshoot is rounding, not an overpayment")
	assert.Equal(t, StatusPaid, l.PaymentStatus())
	assert.Equal(t, 0.0, l.Remaining(), "remaining is floored, never negative")
}

func TestSingleInstrumentFullPayment(t *testing.T) {
	l := New(75, 0, nil, 0).WithTip(15)

	l, err := l.Apply(Settlement{Method: MethodCard, Amount: 75, TipPortion: 15})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, l.PaymentStatus(), "unpaid to paid directly")
}

func TestApplyDoesNotAliasSettlements(t *testing.T) {
	l := New(100, 0, nil, 0)

	a, err := l.Apply(Settlement{Method: MethodCash, Amount: 40})
	require.NoError(t, err)
	b, err := l.Apply(Settlement{Method: MethodCard, Amount: 60})
	require.NoError(t, err)

	assert.Equal(t, MethodCash, a.Settled[0].Method)
	assert.Equal(t, MethodCard, b.Settled[0].Method)
	assert.Len(t, l.Settled, 0, "original value untouched")
}
