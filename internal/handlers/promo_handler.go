package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/domain/promo"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type PromoHandler struct {
	db *gorm.DB
}

func NewPromoHandler(db *gorm.DB) *PromoHandler {
	return &PromoHandler{db: db}
}

type CreatePromoRequest struct {
	Code  string  `json:"code" binding:"required"`
	Type  string  `json:"type" binding:"required"`
	Value float64 `json:"value" binding:"required,gt=0"`

	ServiceID      *uint   `json:"service_id"`
	MinAmount      float64 `json:"min_amount"`
	ExpirationDate string  `json:"expiration_date"`
	UsageLimit     *int    `json:"usage_limit"`
}

type UpdatePromoRequest struct {
	Active *bool `json:"active"`
}

// ======================================================
// CRUD
// ======================================================

func (h *PromoHandler) Create(c *gin.Context) {
	var req CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	kind := strings.ToLower(req.Type)
	if kind != promo.TypePercentage && kind != promo.TypeFixed {
		httperr.BadRequest(c, "invalid_discount_type", "")
		return
	}
	if kind == promo.TypePercentage && req.Value > 100 {
		httperr.BadRequest(c, "invalid_discount_value", "")
		return
	}

	pc := models.PromoCode{
		Code:       strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:       kind,
		Value:      req.Value,
		ServiceID:  req.ServiceID,
		MinAmount:  req.MinAmount,
		UsageLimit: req.UsageLimit,
		Active:     true,
	}

	if req.ExpirationDate != "" {
		expiry, err := parseDate(req.ExpirationDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "")
			return
		}
		pc.ExpirationDate = &expiry
	}

	if err := h.db.Create(&pc).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "code_already_exists", "")
			return
		}
		httperr.Internal(c, "failed_to_create_promo", "")
		return
	}

	httpresp.Created(c, pc)
}

func (h *PromoHandler) List(c *gin.Context) {
	q := h.db.Order("created_at DESC")

	if c.Query("active") == "true" {
		q = q.Where("active = true")
	}

	var codes []models.PromoCode
	if err := q.Find(&codes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_promos", "")
		return
	}

	httpresp.List(c, codes)
}

// Update only flips activation; value and type stay frozen once issued so
// historical discounts keep meaning what they meant.
func (h *PromoHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req UpdatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		httperr.BadRequest(c, "invalid_request", "")
		return
	}

	var pc models.PromoCode
	if err := h.db.First(&pc, id).Error; err != nil {
		httperr.NotFound(c, "promo_not_found", "")
		return
	}

	pc.Active = *req.Active
	if err := h.db.Save(&pc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_promo", "")
		return
	}

	httpresp.OK(c, pc)
}
