package checkout

import (
	"context"

	"github.com/candraczapansky/software-sub012/internal/audit"
	"github.com/candraczapansky/software-sub012/internal/domain/ledger"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

type PayGiftCard struct {
	repo  ledger.Repository
	lock  Locker
	audit *audit.Dispatcher
}

func NewPayGiftCard(
	repo ledger.Repository,
	lock Locker,
	audit *audit.Dispatcher,
) *PayGiftCard {
	return &PayGiftCard{
		repo:  repo,
		lock:  lock,
		audit: audit,
	}
}

// Execute redeems against the card's live balance. The card and the
// appointment each keep their own trail: the card its transaction with the
// balance it left, the appointment its payment row.
func (uc *PayGiftCard) Execute(
	ctx context.Context,
	in CheckoutInput,
	code string,
) (*CheckoutResult, error) {

	if res, ok := replayIdempotent(ctx, uc.repo, in); ok {
		return res, nil
	}

	release, err := uc.lock.Acquire(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	defer release()

	pre, err := prepare(ctx, uc.repo, in)
	if err != nil {
		return nil, err
	}

	card, err := uc.repo.GetGiftCardByCode(ctx, code)
	if err != nil {
		return nil, httperr.ErrBusiness("gift_card_not_found")
	}
	if card.Status != "active" {
		return nil, httperr.ErrBusiness("gift_card_inactive")
	}
	if card.ExpiryDate != nil && card.ExpiryDate.Before(timezone.NowIn(pre.loc.Timezone)) {
		return nil, httperr.ErrBusiness("gift_card_expired")
	}

	redeem := in.Amount + in.TipAmount
	if card.CurrentBalance < redeem {
		return nil, httperr.ErrBusiness("insufficient_balance")
	}

	// Validate against the ledger before touching the card, so a rejected
	// settlement never burns balance.
	if _, err := pre.led.Apply(ledger.Settlement{
		Method:     ledger.MethodGiftCard,
		Amount:     in.Amount,
		TipPortion: in.TipAmount,
		Reference:  card.Code,
	}); err != nil {
		return nil, err
	}

	if err := uc.repo.RedeemGiftCard(ctx, card, pre.ap.ID, redeem); err != nil {
		return nil, err
	}

	res, err := settle(ctx, uc.repo, uc.audit, pre, in, ledger.MethodGiftCard, card.Code, "completed")
	if err != nil {
		return nil, err
	}

	// RedeemGiftCard hands back the post-redemption card state; the desk
	// reads both balances off one response.
	balance := card.CurrentBalance
	res.GiftCardRemainingBalance = &balance
	return res, nil
}
