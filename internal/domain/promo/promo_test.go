package promo

import (
	"testing"
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func active(pc models.PromoCode) *models.PromoCode {
	pc.Active = true
	return &pc
}

func TestValidate(t *testing.T) {
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)
	limit := 5
	svcID := uint(3)

	cases := []struct {
		name         string
		pc           *models.PromoCode
		serviceID    uint
		amount       float64
		wantValid    bool
		wantDiscount float64
	}{
		{
			name:         "percentage",
			pc:           active(models.PromoCode{Code: "SAVE20", Type: "percentage", Value: 20}),
			amount:       100,
			wantValid:    true,
			wantDiscount: 20,
		},
		{
			name:         "fixed",
			pc:           active(models.PromoCode{Code: "TENOFF", Type: "fixed", Value: 10}),
			amount:       45,
			wantValid:    true,
			wantDiscount: 10,
		},
		{
			name:         "fixed capped at amount",
			pc:           active(models.PromoCode{Code: "HUGE", Type: "fixed", Value: 80}),
			amount:       30,
			wantValid:    true,
			wantDiscount: 30,
		},
		{
			name:      "inactive",
			pc:        &models.PromoCode{Code: "OLD", Type: "fixed", Value: 10},
			amount:    50,
			wantValid: false,
		},
		{
			name:      "nil code",
			pc:        nil,
			amount:    50,
			wantValid: false,
		},
		{
			name:      "expired",
			pc:        active(models.PromoCode{Code: "EXP", Type: "fixed", Value: 10, ExpirationDate: &past}),
			amount:    50,
			wantValid: false,
		},
		{
			name:         "not yet expired",
			pc:           active(models.PromoCode{Code: "FRESH", Type: "fixed", Value: 10, ExpirationDate: &future}),
			amount:       50,
			wantValid:    true,
			wantDiscount: 10,
		},
		{
			name:      "usage limit reached",
			pc:        active(models.PromoCode{Code: "FULL", Type: "fixed", Value: 10, UsageLimit: &limit, UsedCount: 5}),
			amount:    50,
			wantValid: false,
		},
		{
			name:      "wrong service",
			pc:        active(models.PromoCode{Code: "CUT", Type: "fixed", Value: 10, ServiceID: &svcID}),
			serviceID: 4,
			amount:    50,
			wantValid: false,
		},
		{
			name:         "matching service",
			pc:           active(models.PromoCode{Code: "CUT", Type: "fixed", Value: 10, ServiceID: &svcID}),
			serviceID:    3,
			amount:       50,
			wantValid:    true,
			wantDiscount: 10,
		},
		{
			name:      "below minimum amount",
			pc:        active(models.PromoCode{Code: "MIN", Type: "fixed", Value: 10, MinAmount: 60}),
			amount:    50,
			wantValid: false,
		},
		{
			name:      "unknown type",
			pc:        active(models.PromoCode{Code: "ODD", Type: "bogo", Value: 10}),
			amount:    50,
			wantValid: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Validate(c.pc, c.serviceID, c.amount, now)
			if got.Valid != c.wantValid {
				t.Fatalf("valid = %v, want %v (%s)", got.Valid, c.wantValid, got.Message)
			}
			if got.Valid && got.DiscountAmount != c.wantDiscount {
				t.Errorf("discount = %v, want %v", got.DiscountAmount, c.wantDiscount)
			}
			if got.Valid && got.NewTotal != c.amount-c.wantDiscount {
				t.Errorf("newTotal = %v, want %v", got.NewTotal, c.amount-c.wantDiscount)
			}
		})
	}
}
