package appointment

import "github.com/candraczapansky/software-sub012/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// IsActive reports whether an appointment still occupies its time window for
// conflict purposes. Only cancellation frees the slot.
func IsActive(status string) bool {
	return status != string(StatusCancelled)
}

// ===============================
// Validations
// ===============================

// CanCancel: a confirmed appointment can be cancelled until it is paid.
func CanCancel(current Status, payment PaymentStatus) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	if payment == PaymentPaid {
		return httperr.ErrBusiness("already_paid")
	}
	return nil
}

// CanComplete is the at-most-once completion gate: only a confirmed
// appointment transitions to completed.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReschedule: completed appointments are frozen for time/staff/service.
func CanReschedule(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusiness("appointment_completed")
	}
	if current == StatusCancelled {
		return httperr.ErrBusiness("appointment_cancelled")
	}
	return nil
}

func InitialStatus() Status {
	return StatusConfirmed
}
