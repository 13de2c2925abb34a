package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/httpresp"
	ucAppointment "github.com/candraczapansky/software-sub012/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	getAvailability *ucAppointment.GetAvailability
}

func NewAvailabilityHandler(uc *ucAppointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{getAvailability: uc}
}

// Get returns the open slots for a staff member on a date. service_id is
// optional: with it, slots reflect the service's full occupied time;
// exclude_appointment_id frees the edited booking's own slot.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	staffID := queryUint(c, "staff_id")
	locationID := queryUint(c, "location_id")
	date := c.Query("date")

	if staffID == 0 || locationID == 0 || date == "" {
		httperr.BadRequest(c, "missing_parameters", "staff_id, location_id and date are required.")
		return
	}

	slots, err := h.getAvailability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		StaffID:              staffID,
		LocationID:           locationID,
		Date:                 date,
		ServiceID:            queryUint(c, "service_id"),
		ExcludeAppointmentID: queryUint(c, "exclude_appointment_id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, slots)
}
