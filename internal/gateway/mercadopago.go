package gateway

import (
	"context"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/candraczapansky/software-sub012/internal/httperr"
)

// MercadoPago adapts the Mercado Pago payments API to the Gateway contract.
type MercadoPago struct {
	payments payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPago{payments: payment.NewClient(cfg)}, nil
}

func (g *MercadoPago) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	res, err := g.payments.Create(ctx, payment.Request{
		TransactionAmount: req.Amount,
		Token:             req.CardToken,
		Description:       req.Description,
		Installments:      1,
		Payer: &payment.PayerRequest{
			Email: req.PayerEmail,
		},
		ExternalReference: req.Reference,
	})
	if err != nil {
		return nil, err
	}

	return &ChargeResult{
		Status:        mapStatus(res.Status),
		TransactionID: strconv.Itoa(res.ID),
		Detail:        res.StatusDetail,
	}, nil
}

func (g *MercadoPago) PaymentStatus(ctx context.Context, transactionID string) (Status, error) {
	id, err := strconv.Atoi(transactionID)
	if err != nil {
		return StatusFailed, httperr.ErrBusiness("invalid_transaction_id")
	}

	res, err := g.payments.Get(ctx, id)
	if err != nil {
		return StatusPending, err
	}
	return mapStatus(res.Status), nil
}

func mapStatus(s string) Status {
	switch s {
	case "approved":
		return StatusConfirmed
	case "rejected", "cancelled", "refunded", "charged_back":
		return StatusFailed
	default:
		// pending, in_process, authorized
		return StatusPending
	}
}

var _ Gateway = (*MercadoPago)(nil)
