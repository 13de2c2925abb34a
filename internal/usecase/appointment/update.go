package appointment

import (
	"context"

	"github.com/candraczapansky/software-sub012/internal/audit"
	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateInput carries the changed fields. Time, staff or service changes
// trigger a full rebooking pass; notes-only edits skip it.
type UpdateInput struct {
	AppointmentID uint

	StaffID   uint
	ServiceID uint
	AddOnIDs  []uint

	Date string
	Time string

	Notes    *string
	HasNotes bool

	// DetachFromSeries pulls a single occurrence out of its recurring
	// group before applying the edit.
	DetachFromSeries bool
}

func (in UpdateInput) reschedules() bool {
	return in.StaffID != 0 || in.ServiceID != 0 || in.Date != "" || in.Time != "" || len(in.AddOnIDs) > 0
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if in.DetachFromSeries {
		domain.DetachFromSeries(ap)
	}

	if in.HasNotes && in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if !in.reschedules() {
		if err := uc.repo.UpdateAppointment(ctx, ap, false); err != nil {
			return nil, err
		}
		return ap, nil
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	bk, err := resolveBooking(ctx, uc.repo, uc.mergedBooking(ap, in))
	if err != nil {
		return nil, err
	}

	ap.StaffID = bk.staff.ID
	ap.ServiceID = bk.service.ID
	ap.AddOns = bk.addOns
	ap.LocationID = bk.location.ID
	ap.StartTime = bk.start
	ap.EndTime = bk.end

	// Price follows the new service unless a discount already landed.
	ap.TotalAmount = totalPrice(bk.service, bk.addOns) - ap.DiscountAmount

	if err := uc.repo.UpdateAppointment(ctx, ap, true); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ap.StaffID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// mergedBooking overlays the edit onto the appointment's current values so
// the rebooking pass always sees a complete request.
func (uc *UpdateAppointment) mergedBooking(ap *models.Appointment, in UpdateInput) BookingInput {
	loc := ap.StartTime

	merged := BookingInput{
		ClientID:   ap.ClientID,
		StaffID:    ap.StaffID,
		ServiceID:  ap.ServiceID,
		LocationID: ap.LocationID,
		Date:       loc.Format("2006-01-02"),
		Time:       loc.Format("15:04"),
		Notes:      ap.Notes,
	}

	if in.StaffID != 0 {
		merged.StaffID = in.StaffID
	}
	if in.ServiceID != 0 {
		merged.ServiceID = in.ServiceID
	}
	if len(in.AddOnIDs) > 0 {
		merged.AddOnIDs = in.AddOnIDs
	} else {
		for _, ao := range ap.AddOns {
			merged.AddOnIDs = append(merged.AddOnIDs, ao.ID)
		}
	}
	if in.Date != "" {
		merged.Date = in.Date
	}
	if in.Time != "" {
		merged.Time = in.Time
	}

	return merged
}
