package appointment

import (
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status), PaymentStatus(ap.PaymentStatus)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Complete moves a fully settled appointment to its terminal happy state.
// Guarded so a retried settlement can never complete the same appointment
// twice.
func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// DetachFromSeries removes one occurrence from its recurring group so it can
// be edited without touching siblings.
func DetachFromSeries(ap *models.Appointment) {
	ap.RecurringGroupID = nil
}
