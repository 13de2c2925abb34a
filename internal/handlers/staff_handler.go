package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/models"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// List returns bookable staff, optionally narrowed to a location or to
// those offering one service.
func (h *StaffHandler) List(c *gin.Context) {
	q := h.db.
		Preload("User").
		Preload("Services").
		Where("staff.active = true")

	if locationID := queryUint(c, "location_id"); locationID != 0 {
		q = q.Where("staff.location_id = ?", locationID)
	}

	if serviceID := queryUint(c, "service_id"); serviceID != 0 {
		q = q.Joins(
			"JOIN staff_services ss ON ss.staff_id = staff.id AND ss.service_id = ?",
			serviceID,
		)
	}

	var staff []models.Staff
	if err := q.Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "")
		return
	}

	httpresp.List(c, staff)
}

type AssignServicesRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

// AssignServices replaces the staff member's bookable service list.
func (h *StaffHandler) AssignServices(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var st models.Staff
	if err := h.db.First(&st, id).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "")
		return
	}

	var req AssignServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var services []models.Service
	if len(req.ServiceIDs) > 0 {
		if err := h.db.
			Where("id IN ? AND is_add_on = false", req.ServiceIDs).
			Find(&services).Error; err != nil || len(services) != len(req.ServiceIDs) {
			httperr.BadRequest(c, "service_not_found", "")
			return
		}
	}

	if err := h.db.Model(&st).Association("Services").Replace(services); err != nil {
		httperr.Internal(c, "failed_to_assign_services", "")
		return
	}

	st.Services = services
	httpresp.OK(c, st)
}
