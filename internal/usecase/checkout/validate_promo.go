package checkout

import (
	"context"

	"github.com/candraczapansky/software-sub012/internal/domain/ledger"
	"github.com/candraczapansky/software-sub012/internal/domain/promo"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

type ValidatePromoInput struct {
	Code      string
	ServiceID uint
	Amount    float64
}

type ValidatePromo struct {
	repo ledger.Repository
}

func NewValidatePromo(repo ledger.Repository) *ValidatePromo {
	return &ValidatePromo{repo: repo}
}

// Execute is the dry-run used by the checkout screen: it never burns usage,
// and an unknown code comes back invalid rather than as an error.
func (uc *ValidatePromo) Execute(
	ctx context.Context,
	in ValidatePromoInput,
) (promo.Result, error) {

	pc, err := uc.repo.GetPromoCodeByCode(ctx, in.Code)
	if err != nil {
		return promo.Result{Valid: false, Message: "Invalid promo code"}, nil
	}

	return promo.Validate(pc, in.ServiceID, in.Amount, timezone.Now()), nil
}
