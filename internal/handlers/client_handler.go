package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

// ======================================================
// LIST (front desk search)
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Limit(200).
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE (get-or-create by phone)
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// phone is the desk's identity key; a repeat booking reuses the record
	var existing models.Client
	if err := h.db.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		httpresp.OK(c, existing)
		return
	}

	client := models.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "")
		return
	}

	httpresp.Created(c, client)
}
