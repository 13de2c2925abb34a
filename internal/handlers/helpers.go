package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

// ======================================================
// SHARED HANDLER HELPERS
// ======================================================

// business error code -> HTTP status class
var conflictCodes = map[string]bool{
	"time_conflict":     true,
	"checkout_busy":     true,
	"duplicate_payment": true,
}

var notFoundCodes = map[string]bool{
	"appointment_not_found": true,
	"location_not_found":    true,
	"staff_not_found":       true,
	"service_not_found":     true,
	"client_not_found":      true,
	"series_not_found":      true,
	"gift_card_not_found":   true,
	"product_not_found":     true,
	"add_on_not_found":      true,
}

var paymentCodes = map[string]bool{
	"payment_failed":       true,
	"insufficient_balance": true,
}

// writeError translates a usecase error into the right HTTP response.
// Business errors carry their code to the client; anything else is opaque.
func writeError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch {
	case conflictCodes[code]:
		httperr.Conflict(c, code, "")
	case notFoundCodes[code]:
		httperr.NotFound(c, code, "")
	case paymentCodes[code]:
		httperr.PaymentRequired(c, code, "")
	default:
		httperr.BadRequest(c, code, "")
	}
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(v), true
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, timezone.Location(timezone.DefaultTimezone))
}
