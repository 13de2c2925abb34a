package gateway

import "context"

// Status is the only thing the checkout core knows about a charge: the
// gateway is a black box that confirms, fails, or stays pending.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

type ChargeRequest struct {
	Amount      float64
	CardToken   string
	Description string
	PayerEmail  string

	// Reference is our idempotency handle on the gateway side.
	Reference string
}

type ChargeResult struct {
	Status        Status
	TransactionID string
	Detail        string
}

// Gateway abstracts the card processor. A confirmed result is the only
// signal that settles money; pending results are resolved by polling.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	PaymentStatus(ctx context.Context, transactionID string) (Status, error)
}
