package dto

import (
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

// AppointmentListDTO is the flattened calendar row: enough to draw the day
// grid without dragging full relations over the wire.
type AppointmentListDTO struct {
	ID uint `json:"id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	ClientName  string `json:"client_name"`
	ServiceName string `json:"service_name"`
	AddOnCount  int    `json:"add_on_count"`

	TotalAmount float64 `json:"total_amount"`

	RecurringGroupID *string `json:"recurring_group_id,omitempty"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:               ap.ID,
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		Status:           ap.Status,
		PaymentStatus:    ap.PaymentStatus,
		ClientName:       ap.Client.Name,
		ServiceName:      ap.Service.Name,
		AddOnCount:       len(ap.AddOns),
		TotalAmount:      ap.TotalAmount,
		RecurringGroupID: ap.RecurringGroupID,
	}
}
