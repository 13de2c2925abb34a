package appointment

import (
	"context"
	"time"

	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

type ListByRangeInput struct {
	// StaffID zero lists every staff member's calendar.
	StaffID uint

	StartDate string // 2006-01-02, inclusive
	EndDate   string // 2006-01-02, inclusive
}

type ListByRange struct {
	repo domain.Repository
}

func NewListByRange(repo domain.Repository) *ListByRange {
	return &ListByRange{repo: repo}
}

func (uc *ListByRange) Execute(
	ctx context.Context,
	in ListByRangeInput,
) ([]models.Appointment, error) {

	loc := timezone.Location(timezone.DefaultTimezone)

	start, err := time.ParseInLocation("2006-01-02", in.StartDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	end, err := time.ParseInLocation("2006-01-02", in.EndDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	end = end.AddDate(0, 0, 1) // inclusive end date

	if end.Before(start) {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	return uc.repo.ListForRange(ctx, in.StaffID, start, end)
}
