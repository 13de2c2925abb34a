package appointment

import (
	"context"

	"github.com/candraczapansky/software-sub012/internal/audit"
	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

type SeriesCancelResult struct {
	CancelledCount int                `json:"cancelled_count"`
	SkippedCount   int                `json:"skipped_count"`
	Failures       []RecurringFailure `json:"failures"`
}

type CancelSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelSeries(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelSeries {
	return &CancelSeries{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels every future, still-cancellable occurrence of the group.
// Past, paid and already-terminal occurrences are skipped, not failed.
func (uc *CancelSeries) Execute(
	ctx context.Context,
	groupID string,
) (*SeriesCancelResult, error) {

	series, err := uc.repo.ListSeries(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, httperr.ErrBusiness("series_not_found")
	}

	now := timezone.Now()
	result := &SeriesCancelResult{Failures: []RecurringFailure{}}

	for i := range series {
		ap := &series[i]

		if !ap.StartTime.After(now) {
			result.SkippedCount++
			continue
		}

		if err := domain.Cancel(ap, now); err != nil {
			result.SkippedCount++
			continue
		}

		if err := uc.repo.UpdateAppointment(ctx, ap, false); err != nil {
			result.Failures = append(result.Failures, RecurringFailure{
				Index:  i,
				Date:   ap.StartTime.Format("2006-01-02"),
				Reason: failureReason(err),
			})
			continue
		}

		result.CancelledCount++
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "recurring_series_cancelled",
		Entity:   "appointment",
		Metadata: map[string]any{"group_id": groupID, "cancelled": result.CancelledCount},
	})

	return result, nil
}
