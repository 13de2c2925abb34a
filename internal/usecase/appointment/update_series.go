package appointment

import (
	"context"

	"github.com/candraczapansky/software-sub012/internal/audit"
	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// UpdateSeriesInput edits every not-yet-started occurrence of a recurring
// group. Time is a time-of-day shift applied to each occurrence's own date;
// staff/service/notes replace across the board.
type UpdateSeriesInput struct {
	GroupID string

	StaffID   uint
	ServiceID uint
	AddOnIDs  []uint

	Time string // 15:04, shifts each occurrence on its own date

	Notes    *string
	HasNotes bool
}

type SeriesUpdateResult struct {
	UpdatedCount int                `json:"updated_count"`
	FailedCount  int                `json:"failed_count"`
	Failures     []RecurringFailure `json:"failures"`
}

// ======================================================
// USE CASE
// ======================================================

type UpdateSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSeries(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateSeries {
	return &UpdateSeries{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateSeries) Execute(
	ctx context.Context,
	in UpdateSeriesInput,
) (*SeriesUpdateResult, error) {

	series, err := uc.repo.ListSeries(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, httperr.ErrBusiness("series_not_found")
	}

	reschedules := in.StaffID != 0 || in.ServiceID != 0 || in.Time != "" || len(in.AddOnIDs) > 0

	now := timezone.Now()
	result := &SeriesUpdateResult{Failures: []RecurringFailure{}}

	for i := range series {
		ap := &series[i]

		// Past and terminal occurrences stay untouched.
		if !ap.StartTime.After(now) || !domain.IsActive(ap.Status) {
			continue
		}

		if in.HasNotes && in.Notes != nil {
			ap.Notes = *in.Notes
		}

		if !reschedules {
			if err := uc.repo.UpdateAppointment(ctx, ap, false); err != nil {
				result.FailedCount++
				result.Failures = append(result.Failures, RecurringFailure{
					Index:  i,
					Date:   ap.StartTime.Format("2006-01-02"),
					Reason: failureReason(err),
				})
				continue
			}
			result.UpdatedCount++
			continue
		}

		full, err := uc.repo.GetAppointment(ctx, ap.ID)
		if err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, RecurringFailure{
				Index:  i,
				Date:   ap.StartTime.Format("2006-01-02"),
				Reason: failureReason(err),
			})
			continue
		}
		if in.HasNotes && in.Notes != nil {
			full.Notes = *in.Notes
		}

		bk, err := resolveBooking(ctx, uc.repo, uc.occurrenceBooking(full, in))
		if err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, RecurringFailure{
				Index:  i,
				Date:   ap.StartTime.Format("2006-01-02"),
				Reason: failureReason(err),
			})
			continue
		}

		full.StaffID = bk.staff.ID
		full.ServiceID = bk.service.ID
		full.AddOns = bk.addOns
		full.StartTime = bk.start
		full.EndTime = bk.end
		full.TotalAmount = totalPrice(bk.service, bk.addOns) - full.DiscountAmount

		if err := uc.repo.UpdateAppointment(ctx, full, true); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, RecurringFailure{
				Index:  i,
				Date:   ap.StartTime.Format("2006-01-02"),
				Reason: failureReason(err),
			})
			continue
		}

		result.UpdatedCount++
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "recurring_series_updated",
		Entity:   "appointment",
		Metadata: map[string]any{"group_id": in.GroupID, "updated": result.UpdatedCount, "failed": result.FailedCount},
	})

	return result, nil
}

func (uc *UpdateSeries) occurrenceBooking(ap *models.Appointment, in UpdateSeriesInput) BookingInput {
	merged := BookingInput{
		ClientID:   ap.ClientID,
		StaffID:    ap.StaffID,
		ServiceID:  ap.ServiceID,
		LocationID: ap.LocationID,
		Date:       ap.StartTime.Format("2006-01-02"),
		Time:       ap.StartTime.Format("15:04"),
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
	if in.Time != "" {
		merged.Time = in.Time
	}

	return merged
}
