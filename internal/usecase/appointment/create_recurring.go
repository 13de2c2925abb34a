package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/candraczapansky/software-sub012/internal/audit"
	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/domain/schedule"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateRecurringInput struct {
	BookingInput

	Frequency string

	// Count is the number of occurrences including the first. Zero means
	// indefinite, which books up to the frequency's yearly cap.
	Count int
}

type RecurringFailure struct {
	Index  int    `json:"index"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// RecurringResult reports partial success: the series is created occurrence
// by occurrence and a conflict on one date never rolls back the others.
type RecurringResult struct {
	GroupID      string               `json:"group_id"`
	CreatedCount int                  `json:"created_count"`
	FailedCount  int                  `json:"failed_count"`
	Failures     []RecurringFailure   `json:"failures"`
	Created      []models.Appointment `json:"created"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateRecurringSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateRecurringSeries(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateRecurringSeries {
	return &CreateRecurringSeries{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateRecurringSeries) Execute(
	ctx context.Context,
	in CreateRecurringInput,
) (*RecurringResult, error) {

	freq, err := domain.ParseFrequency(in.Frequency)
	if err != nil {
		return nil, err
	}

	count := in.Count
	if count == 0 {
		count = freq.IndefiniteCap()
	}

	// Validate the base occurrence up front; a bad first slot fails the
	// whole request, later occurrences degrade to per-date failures.
	bk, err := resolveBooking(ctx, uc.repo, in.BookingInput)
	if err != nil {
		return nil, err
	}

	times, err := domain.OccurrenceTimes(bk.start, freq, count)
	if err != nil {
		return nil, err
	}

	rules, err := uc.repo.ListSchedules(ctx, in.StaffID, in.LocationID)
	if err != nil {
		return nil, err
	}

	groupID := uuid.NewString()
	occupied := bk.end.Sub(bk.start)
	price := totalPrice(bk.service, bk.addOns)

	footprint := *bk.service
	footprint.DurationMin = int(occupied.Minutes()) - bk.service.BufferBeforeMin - bk.service.BufferAfterMin

	result := &RecurringResult{
		GroupID:  groupID,
		Failures: []RecurringFailure{},
		Created:  []models.Appointment{},
	}

	for i, start := range times {
		// Monthly cadence can drift onto a different weekday, so every
		// occurrence gets its own window check.
		windows := schedule.EffectiveWindows(rules, start, in.LocationID)
		if !schedule.Bookable(schedule.SlotInput{Day: start, Windows: windows, Service: &footprint}, start) {
			result.FailedCount++
			result.Failures = append(result.Failures, RecurringFailure{
				Index:  i,
				Date:   start.Format("2006-01-02"),
				Reason: "outside_schedule",
			})
			continue
		}

		ap := models.Appointment{
			ClientID:   bk.client.ID,
			StaffID:    bk.staff.ID,
			ServiceID:  bk.service.ID,
			AddOns:     bk.addOns,
			LocationID: bk.location.ID,

			StartTime: start,
			EndTime:   start.Add(occupied),

			Status:        string(domain.InitialStatus()),
			PaymentStatus: string(domain.PaymentUnpaid),

			TotalAmount:      price,
			Notes:            seriesNotes(in.Notes, i+1, count),
			RecurringGroupID: &groupID,
		}

		if err := uc.repo.CreateAppointment(ctx, &ap); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, RecurringFailure{
				Index:  i,
				Date:   start.Format("2006-01-02"),
				Reason: failureReason(err),
			})
			continue
		}

		result.CreatedCount++
		result.Created = append(result.Created, ap)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &bk.staff.ID,
		Action:   "recurring_series_created",
		Entity:   "appointment",
		Metadata: map[string]any{"group_id": groupID, "created": result.CreatedCount, "failed": result.FailedCount},
	})

	return result, nil
}

func seriesNotes(notes string, n, total int) string {
	suffix := fmt.Sprintf("(Recurring %d/%d)", n, total)
	if notes == "" {
		return suffix
	}
	return notes + " " + suffix
}

func failureReason(err error) string {
	if code, ok := httperr.BusinessCode(err); ok {
		return code
	}
	return "internal_error"
}
