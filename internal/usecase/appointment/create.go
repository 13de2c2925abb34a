package appointment

import (
	"context"

	"github.com/candraczapansky/software-sub012/internal/audit"
	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in BookingInput,
) (*models.Appointment, error) {

	bk, err := resolveBooking(ctx, uc.repo, in)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:   bk.client.ID,
		StaffID:    bk.staff.ID,
		ServiceID:  bk.service.ID,
		AddOns:     bk.addOns,
		LocationID: bk.location.ID,

		StartTime: bk.start,
		EndTime:   bk.end,

		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentUnpaid),

		TotalAmount: totalPrice(bk.service, bk.addOns),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ap.StaffID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
