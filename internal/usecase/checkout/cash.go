package checkout

import (
	"context"

	"github.com/candraczapansky/software-sub012/internal/audit"
	"github.com/candraczapansky/software-sub012/internal/domain/ledger"
)

type PayCash struct {
	repo  ledger.Repository
	lock  Locker
	audit *audit.Dispatcher
}

func NewPayCash(
	repo ledger.Repository,
	lock Locker,
	audit *audit.Dispatcher,
) *PayCash {
	return &PayCash{
		repo:  repo,
		lock:  lock,
		audit: audit,
	}
}

func (uc *PayCash) Execute(
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

	return settle(ctx, uc.repo, uc.audit, pre, in, ledger.MethodCash, "", "completed")
}
