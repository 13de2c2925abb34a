package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/candraczapansky/software-sub012/internal/audit"
	"github.com/candraczapansky/software-sub012/internal/domain/ledger"
	"github.com/candraczapansky/software-sub012/internal/gateway"
	"github.com/candraczapansky/software-sub012/internal/httperr"
)

type PayTerminal struct {
	repo  ledger.Repository
	lock  Locker
	gw    gateway.Gateway
	audit *audit.Dispatcher

	// polling budget for the cardholder to finish at the device
	pollAttempts int
	pollInterval time.Duration
}

func NewPayTerminal(
	repo ledger.Repository,
	lock Locker,
	gw gateway.Gateway,
	audit *audit.Dispatcher,
	pollAttempts int,
	pollInterval time.Duration,
) *PayTerminal {
	if pollAttempts <= 0 {
		pollAttempts = 6
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &PayTerminal{
		repo:         repo,
		lock:         lock,
		gw:           gw,
		audit:        audit,
		pollAttempts: pollAttempts,
		pollInterval: pollInterval,
	}
}

// Execute starts a terminal charge and polls the gateway a bounded number of
// times while the cardholder interacts with the device. A charge still
// pending when the budget runs out is recorded as pending; it never blocks
// the desk forever.
func (uc *PayTerminal) Execute(
	ctx context.Context,
	in CheckoutInput,
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

	if _, err := pre.led.Apply(ledger.Settlement{
		Method:     ledger.MethodTerminal,
		Amount:     in.Amount,
		TipPortion: in.TipAmount,
	}); err != nil {
		return nil, err
	}

	charge, err := uc.gw.Charge(ctx, gateway.ChargeRequest{
		Amount:      in.Amount + in.TipAmount,
		Description: fmt.Sprintf("appointment #%d (terminal)", pre.ap.ID),
		PayerEmail:  pre.ap.Client.Email,
		Reference:   in.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	status := charge.Status
	for attempt := 0; status == gateway.StatusPending && attempt < uc.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(uc.pollInterval):
		}

		status, err = uc.gw.PaymentStatus(ctx, charge.TransactionID)
		if err != nil {
			return nil, err
		}
	}

	switch status {
	case gateway.StatusConfirmed:
		return settle(ctx, uc.repo, uc.audit, pre, in, ledger.MethodTerminal, charge.TransactionID, "completed")

	case gateway.StatusPending:
		return settle(ctx, uc.repo, uc.audit, pre, in, ledger.MethodTerminal, charge.TransactionID, "pending")

	default:
		return nil, httperr.ErrBusiness("payment_failed")
	}
}
