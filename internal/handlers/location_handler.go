package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/config"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/models"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

type LocationHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewLocationHandler(db *gorm.DB, cfg *config.Config) *LocationHandler {
	return &LocationHandler{db: db, cfg: cfg}
}

type LocationRequest struct {
	Name     string   `json:"name" binding:"required"`
	Address  string   `json:"address"`
	Phone    string   `json:"phone"`
	Timezone string   `json:"timezone"`
	TaxRate  *float64 `json:"tax_rate" binding:"omitempty,min=0,max=1"`
}

// taxRate resolves the retail tax rate for a new location: an explicit value
// wins (zero is a legitimate no-tax rate), otherwise the configured default.
func (req LocationRequest) taxRate(def float64) float64 {
	if req.TaxRate != nil {
		return *req.TaxRate
	}
	return def
}

func (h *LocationHandler) List(c *gin.Context) {
	var locations []models.Location
	if err := h.db.
		Where("active = true").
		Order("name ASC").
		Find(&locations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_locations", "")
		return
	}

	httpresp.List(c, locations)
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "")
		return
	}

	loc := models.Location{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Timezone: tz,
		TaxRate:  req.taxRate(h.cfg.DefaultTaxRate),
		Active:   true,
	}

	if err := h.db.Create(&loc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_location", "")
		return
	}

	httpresp.Created(c, loc)
}
