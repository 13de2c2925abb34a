package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	"github.com/candraczapansky/software-sub012/internal/models"
	"github.com/candraczapansky/software-sub012/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleRuleRequest struct {
	StaffID    uint   `json:"staff_id" binding:"required"`
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	LocationID uint   `json:"location_id"`

	StartDate string `json:"start_date" binding:"required"` // 2006-01-02
	EndDate   string `json:"end_date"`                      // empty = open ended

	IsBlocked   bool   `json:"is_blocked"`
	BlockReason string `json:"block_reason"`
}

func (req ScheduleRuleRequest) toModel() (models.StaffSchedule, error) {
	var rule models.StaffSchedule

	if !validators.IsValidTimeOfDay(req.StartTime) || !validators.IsValidTimeOfDay(req.EndTime) {
		return rule, httperr.ErrBusiness("invalid_time")
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return rule, httperr.ErrBusiness("invalid_date")
	}

	rule = models.StaffSchedule{
		StaffID:     req.StaffID,
		Weekday:     req.Weekday,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		LocationID:  req.LocationID,
		StartDate:   startDate,
		IsBlocked:   req.IsBlocked,
		BlockReason: req.BlockReason,
	}

	if req.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return rule, httperr.ErrBusiness("invalid_date")
		}
		if endDate.Before(startDate) {
			return rule, httperr.ErrBusiness("invalid_range")
		}
		rule.EndDate = &endDate
	}

	return rule, nil
}

// ======================================================
// CRUD
// ======================================================

func (h *ScheduleHandler) List(c *gin.Context) {
	staffID := queryUint(c, "staff_id")
	if staffID == 0 {
		httperr.BadRequest(c, "missing_parameters", "staff_id is required.")
		return
	}

	var rules []models.StaffSchedule
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		httperr.Internal(c, "failed_to_list_schedules", "")
		return
	}

	httpresp.List(c, rules)
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req ScheduleRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rule, err := req.toModel()
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.db.Create(&rule).Error; err != nil {
		httperr.Internal(c, "failed_to_create_schedule", "")
		return
	}

	httpresp.Created(c, rule)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var existing models.StaffSchedule
	if err := h.db.First(&existing, id).Error; err != nil {
		httperr.NotFound(c, "schedule_not_found", "")
		return
	}

	var req ScheduleRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rule, err := req.toModel()
	if err != nil {
		writeError(c, err)
		return
	}
	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt

	if err := h.db.Save(&rule).Error; err != nil {
		httperr.Internal(c, "failed_to_update_schedule", "")
		return
	}

	httpresp.OK(c, rule)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.db.Delete(&models.StaffSchedule{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_schedule", "")
		return
	}

	c.Status(204)
}
