package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/models"
)

// ProductHandler manages the retail items rung up at checkout.
type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type ProductRequest struct {
	Name    string  `json:"name" binding:"required"`
	Price   float64 `json:"price" binding:"required,gt=0"`
	Taxable *bool   `json:"taxable"`
}

func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product
	if err := h.db.
		Where("active = true").
		Order("name ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "")
		return
	}

	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	p := models.Product{
		Name:    req.Name,
		Price:   req.Price,
		Taxable: req.Taxable == nil || *req.Taxable,
		Active:  true,
	}

	if err := h.db.Create(&p).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "")
		return
	}

	httpresp.Created(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var p models.Product
	if err := h.db.First(&p, id).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	p.Name = req.Name
	p.Price = req.Price
	if req.Taxable != nil {
		p.Taxable = *req.Taxable
	}

	if err := h.db.Save(&p).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "")
		return
	}

	httpresp.OK(c, p)
}
