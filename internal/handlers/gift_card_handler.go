package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type GiftCardHandler struct {
	db *gorm.DB
}

func NewGiftCardHandler(db *gorm.DB) *GiftCardHandler {
	return &GiftCardHandler{db: db}
}

type IssueGiftCardRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	IssuedToName  string  `json:"issued_to_name"`
	IssuedToEmail string  `json:"issued_to_email"`
	ExpiryDate    string  `json:"expiry_date"`
}

// ======================================================
// ISSUE
// ======================================================

func (h *GiftCardHandler) Issue(c *gin.Context) {
	var req IssueGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	card := models.GiftCard{
		Code:           newGiftCardCode(),
		InitialAmount:  req.Amount,
		CurrentBalance: req.Amount,
		IssuedToName:   req.IssuedToName,
		IssuedToEmail:  strings.ToLower(strings.TrimSpace(req.IssuedToEmail)),
		Status:         "active",
	}

	if req.ExpiryDate != "" {
		expiry, err := parseDate(req.ExpiryDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "")
			return
		}
		card.ExpiryDate = &expiry
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&card).Error; err != nil {
			return err
		}
		return tx.Create(&models.GiftCardTransaction{
			GiftCardID:   card.ID,
			Type:         "purchase",
			Amount:       req.Amount,
			BalanceAfter: req.Amount,
		}).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_issue_gift_card", "")
		return
	}

	httpresp.Created(c, card)
}

// ======================================================
// LOOKUP
// ======================================================

func (h *GiftCardHandler) GetByCode(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	var card models.GiftCard
	if err := h.db.Where("code = ?", code).First(&card).Error; err != nil {
		httperr.NotFound(c, "gift_card_not_found", "")
		return
	}

	httpresp.OK(c, card)
}

func (h *GiftCardHandler) ListTransactions(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	var card models.GiftCard
	if err := h.db.Where("code = ?", code).First(&card).Error; err != nil {
		httperr.NotFound(c, "gift_card_not_found", "")
		return
	}

	var txns []models.GiftCardTransaction
	if err := h.db.
		Where("gift_card_id = ?", card.ID).
		Order("created_at ASC").
		Find(&txns).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "")
		return
	}

	httpresp.List(c, txns)
}

// newGiftCardCode mints a human-readable card code.
func newGiftCardCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "GC-" + raw[:12]
}
