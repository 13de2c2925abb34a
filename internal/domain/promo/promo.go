package promo

import (
	"math"
	"strings"
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

// Result is what checkout needs to apply a code: either a reason it cannot
// be used, or a discount amount already capped to the base.
type Result struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discount_amount"`
	NewTotal       float64 `json:"new_total"`
	Message        string  `json:"message,omitempty"`
}

func invalid(msg string) Result {
	return Result{Valid: false, Message: msg}
}

// Validate checks a promo code against a service and a pre-discount base
// amount. The produced discount never exceeds the base.
func Validate(pc *models.PromoCode, serviceID uint, amount float64, now time.Time) Result {
	if pc == nil || !pc.Active {
		return invalid("Invalid or inactive code")
	}
	if pc.ExpirationDate != nil && pc.ExpirationDate.Before(now) {
		return invalid("Code expired")
	}
	if pc.UsageLimit != nil && pc.UsedCount >= *pc.UsageLimit {
		return invalid("Usage limit reached")
	}
	if pc.ServiceID != nil && serviceID != 0 && *pc.ServiceID != serviceID {
		return invalid("Code not valid for this service")
	}
	if amount < pc.MinAmount {
		return invalid("Amount below the code minimum")
	}

	var discount float64
	switch strings.ToLower(pc.Type) {
	case TypePercentage:
		discount = amount * pc.Value / 100
	case TypeFixed:
		discount = pc.Value
	default:
		return invalid("Unknown discount type")
	}

	discount = math.Max(0, math.Min(amount, discount))
	discount = math.Round(discount*100) / 100
	if discount <= 0 {
		return invalid("Code produces no discount")
	}

	return Result{
		Valid:          true,
		DiscountAmount: discount,
		NewTotal:       math.Round(math.Max(0, amount-discount)*100) / 100,
	}
}
