package checkout

import (
	"context"
	"fmt"

	"github.com/candraczapansky/software-sub012/internal/audit"
	"github.com/candraczapansky/software-sub012/internal/domain/ledger"
	"github.com/candraczapansky/software-sub012/internal/gateway"
	"github.com/candraczapansky/software-sub012/internal/httperr"
)

type PayCard struct {
	repo  ledger.Repository
	lock  Locker
	gw    gateway.Gateway
	audit *audit.Dispatcher
}

func NewPayCard(
	repo ledger.Repository,
	lock Locker,
	gw gateway.Gateway,
	audit *audit.Dispatcher,
) *PayCard {
	return &PayCard{
		repo:  repo,
		lock:  lock,
		gw:    gw,
		audit: audit,
	}
}

// Execute charges the tokenized card through the gateway. A declined charge
// leaves the appointment untouched; a pending one is recorded but does not
// count toward the balance until it confirms.
func (uc *PayCard) Execute(
	ctx context.Context,
	in CheckoutInput,
	cardToken string,
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

	// Reject before charging: a charge that could never settle must not
	// reach the gateway.
	if _, err := pre.led.Apply(ledger.Settlement{
		Method:     ledger.MethodCard,
		Amount:     in.Amount,
		TipPortion: in.TipAmount,
	}); err != nil {
		return nil, err
	}

	charge, err := uc.gw.Charge(ctx, gateway.ChargeRequest{
		Amount:      in.Amount + in.TipAmount,
		CardToken:   cardToken,
		Description: fmt.Sprintf("appointment #%d", pre.ap.ID),
		PayerEmail:  pre.ap.Client.Email,
		Reference:   in.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	switch charge.Status {
	case gateway.StatusConfirmed:
		return settle(ctx, uc.repo, uc.audit, pre, in, ledger.MethodCard, charge.TransactionID, "completed")

	case gateway.StatusPending:
		return settle(ctx, uc.repo, uc.audit, pre, in, ledger.MethodCard, charge.TransactionID, "pending")

	default:
		return nil, httperr.ErrBusiness("payment_failed")
	}
}
