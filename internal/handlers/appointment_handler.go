package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/candraczapansky/software-sub012/internal/dto"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	ucAppointment "github.com/candraczapansky/software-sub012/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create          *ucAppointment.CreateAppointment
	createRecurring *ucAppointment.CreateRecurringSeries
	update          *ucAppointment.UpdateAppointment
	updateSeries    *ucAppointment.UpdateSeries
	cancel          *ucAppointment.CancelAppointment
	cancelSeries    *ucAppointment.CancelSeries
	listByRange     *ucAppointment.ListByRange
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	createRecurring *ucAppointment.CreateRecurringSeries,
	update *ucAppointment.UpdateAppointment,
	updateSeries *ucAppointment.UpdateSeries,
	cancel *ucAppointment.CancelAppointment,
	cancelSeries *ucAppointment.CancelSeries,
	listByRange *ucAppointment.ListByRange,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:          create,
		createRecurring: createRecurring,
		update:          update,
		updateSeries:    updateSeries,
		cancel:          cancel,
		cancelSeries:    cancelSeries,
		listByRange:     listByRange,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	StaffID    uint   `json:"staff_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	AddOnIDs   []uint `json:"add_on_ids"`
	LocationID uint   `json:"location_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

type CreateRecurringRequest struct {
	CreateAppointmentRequest

	Frequency string `json:"frequency" binding:"required"`
	Count     int    `json:"count"`
}

type UpdateAppointmentRequest struct {
	StaffID   uint    `json:"staff_id"`
	ServiceID uint    `json:"service_id"`
	AddOnIDs  []uint  `json:"add_on_ids"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Notes     *string `json:"notes"`

	DetachFromSeries bool `json:"detach_from_series"`
}

type UpdateSeriesRequest struct {
	StaffID   uint    `json:"staff_id"`
	ServiceID uint    `json:"service_id"`
	AddOnIDs  []uint  `json:"add_on_ids"`
	Time      string  `json:"time"`
	Notes     *string `json:"notes"`
}

func bookingInput(req CreateAppointmentRequest) ucAppointment.BookingInput {
	return ucAppointment.BookingInput{
		ClientID:   req.ClientID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		AddOnIDs:   req.AddOnIDs,
		LocationID: req.LocationID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), bookingInput(req))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) CreateRecurring(c *gin.Context) {
	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.createRecurring.Execute(c.Request.Context(), ucAppointment.CreateRecurringInput{
		BookingInput: bookingInput(req.CreateAppointmentRequest),
		Frequency:    req.Frequency,
		Count:        req.Count,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateInput{
		AppointmentID:    id,
		StaffID:          req.StaffID,
		ServiceID:        req.ServiceID,
		AddOnIDs:         req.AddOnIDs,
		Date:             req.Date,
		Time:             req.Time,
		Notes:            req.Notes,
		HasNotes:         req.Notes != nil,
		DetachFromSeries: req.DetachFromSeries,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateSeries(c *gin.Context) {
	groupID := c.Param("groupId")

	var req UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.updateSeries.Execute(c.Request.Context(), ucAppointment.UpdateSeriesInput{
		GroupID:   groupID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		AddOnIDs:  req.AddOnIDs,
		Time:      req.Time,
		Notes:     req.Notes,
		HasNotes:  req.Notes != nil,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) CancelSeries(c *gin.Context) {
	groupID := c.Param("groupId")

	res, err := h.cancelSeries.Execute(c.Request.Context(), groupID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	apps, err := h.listByRange.Execute(c.Request.Context(), ucAppointment.ListByRangeInput{
		StaffID:   queryUint(c, "staff_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentListDTO(ap))
	}

	httpresp.List(c, out)
}
