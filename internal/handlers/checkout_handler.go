package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	ucCheckout "github.com/candraczapansky/software-sub012/internal/usecase/checkout"
)

// ======================================================
// HANDLER
// ======================================================

type CheckoutHandler struct {
	cash     *ucCheckout.PayCash
	card     *ucCheckout.PayCard
	terminal *ucCheckout.PayTerminal
	giftCard *ucCheckout.PayGiftCard
	promo    *ucCheckout.ValidatePromo
}

func NewCheckoutHandler(
	cash *ucCheckout.PayCash,
	card *ucCheckout.PayCard,
	terminal *ucCheckout.PayTerminal,
	giftCard *ucCheckout.PayGiftCard,
	promo *ucCheckout.ValidatePromo,
) *CheckoutHandler {
	return &CheckoutHandler{
		cash:     cash,
		card:     card,
		terminal: terminal,
		giftCard: giftCard,
		promo:    promo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PaymentRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	TipAmount float64 `json:"tip_amount"`

	PromoCode string                    `json:"promo_code"`
	Products  []ucCheckout.ProductInput `json:"products"`

	IdempotencyKey string `json:"idempotency_key"`
	Notes          string `json:"notes"`

	// method-specific
	CardToken    string `json:"card_token"`
	GiftCardCode string `json:"gift_card_code"`
}

func (req PaymentRequest) input(appointmentID uint) ucCheckout.CheckoutInput {
	return ucCheckout.CheckoutInput{
		AppointmentID:  appointmentID,
		Amount:         req.Amount,
		TipAmount:      req.TipAmount,
		PromoCode:      req.PromoCode,
		Products:       req.Products,
		IdempotencyKey: req.IdempotencyKey,
		Notes:          req.Notes,
	}
}

func (h *CheckoutHandler) bind(c *gin.Context) (uint, PaymentRequest, bool) {
	id, ok := paramUint(c, "id")
	if !ok {
		return 0, PaymentRequest{}, false
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return 0, PaymentRequest{}, false
	}

	return id, req, true
}

// ======================================================
// PAYMENTS
// ======================================================

func (h *CheckoutHandler) PayCash(c *gin.Context) {
	id, req, ok := h.bind(c)
	if !ok {
		return
	}

	res, err := h.cash.Execute(c.Request.Context(), req.input(id))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *CheckoutHandler) PayCard(c *gin.Context) {
	id, req, ok := h.bind(c)
	if !ok {
		return
	}
	if req.CardToken == "" {
		httperr.BadRequest(c, "missing_card_token", "card_token is required.")
		return
	}

	res, err := h.card.Execute(c.Request.Context(), req.input(id), req.CardToken)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *CheckoutHandler) PayTerminal(c *gin.Context) {
	id, req, ok := h.bind(c)
	if !ok {
		return
	}

	res, err := h.terminal.Execute(c.Request.Context(), req.input(id))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *CheckoutHandler) PayGiftCard(c *gin.Context) {
	id, req, ok := h.bind(c)
	if !ok {
		return
	}
	if req.GiftCardCode == "" {
		httperr.BadRequest(c, "missing_gift_card_code", "gift_card_code is required.")
		return
	}

	res, err := h.giftCard.Execute(c.Request.Context(), req.input(id), req.GiftCardCode)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// PROMO VALIDATION (DRY RUN)
// ======================================================

type ValidatePromoRequest struct {
	Code      string  `json:"code" binding:"required"`
	ServiceID uint    `json:"service_id"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

func (h *CheckoutHandler) ValidatePromo(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.promo.Execute(c.Request.Context(), ucCheckout.ValidatePromoInput{
		Code:      req.Code,
		ServiceID: req.ServiceID,
		Amount:    req.Amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}
