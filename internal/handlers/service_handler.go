package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	DurationMin     int `json:"duration_min" binding:"required,gt=0"`
	BufferBeforeMin int `json:"buffer_before_min" binding:"min=0"`
	BufferAfterMin  int `json:"buffer_after_min" binding:"min=0"`

	Price float64 `json:"price" binding:"min=0"`

	IsAddOn        bool   `json:"is_add_on"`
	CompatibleWith []uint `json:"compatible_with"`
	Category       string `json:"category"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Where("active = true")

	switch c.Query("kind") {
	case "add_on":
		q = q.Where("is_add_on = true")
	case "base":
		q = q.Where("is_add_on = false")
	}

	var services []models.Service
	if err := q.
		Preload("CompatibleWith").
		Order("category ASC, name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMin:     req.DurationMin,
		BufferBeforeMin: req.BufferBeforeMin,
		BufferAfterMin:  req.BufferAfterMin,
		Price:           req.Price,
		IsAddOn:         req.IsAddOn,
		Category:        req.Category,
		Active:          true,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&svc).Error; err != nil {
			return err
		}
		return h.linkCompatibleBases(tx, &svc, req.CompatibleWith)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMin = req.DurationMin
	svc.BufferBeforeMin = req.BufferBeforeMin
	svc.BufferAfterMin = req.BufferAfterMin
	svc.Price = req.Price
	svc.IsAddOn = req.IsAddOn
	svc.Category = req.Category

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&svc).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM service_add_ons WHERE add_on_id = ?", svc.ID,
		).Error; err != nil {
			return err
		}
		return h.linkCompatibleBases(tx, &svc, req.CompatibleWith)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Deactivate(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.db.Model(&models.Service{}).
		Where("id = ?", id).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_deactivate_service", "")
		return
	}

	c.Status(204)
}

// linkCompatibleBases records which base services an add-on may attach to.
// Non-add-ons never carry compatibility rows.
func (h *ServiceHandler) linkCompatibleBases(tx *gorm.DB, svc *models.Service, baseIDs []uint) error {
	if !svc.IsAddOn || len(baseIDs) == 0 {
		return nil
	}

	for _, baseID := range baseIDs {
		var base models.Service
		if err := tx.Where("id = ? AND is_add_on = false", baseID).First(&base).Error; err != nil {
			return httperr.ErrBusiness("service_not_found")
		}
		if err := tx.Exec(
			"INSERT INTO service_add_ons (add_on_id, base_service_id) VALUES (?, ?)",
			svc.ID, baseID,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
