package appointment

import (
	"context"
	"time"

	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/domain/schedule"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
	"github.com/candraczapansky/software-sub012/internal/timezone"
)

type AvailabilityInput struct {
	StaffID    uint
	LocationID uint

	Date string // 2006-01-02

	// ServiceID optional: zero returns window-filtered slots only.
	ServiceID uint

	// ExcludeAppointmentID frees the edited appointment's own time when
	// re-slotting.
	ExcludeAppointmentID uint
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]schedule.Slot, error) {

	loc, err := uc.repo.GetLocation(ctx, in.LocationID)
	if err != nil {
		return nil, httperr.ErrBusiness("location_not_found")
	}

	day, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(loc.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	var service *models.Service
	if in.ServiceID != 0 {
		service, err = uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}

	rules, err := uc.repo.ListSchedules(ctx, in.StaffID, in.LocationID)
	if err != nil {
		return nil, err
	}
	windows := schedule.EffectiveWindows(rules, day, in.LocationID)

	apps, err := uc.repo.ListActiveForDay(ctx, in.StaffID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return schedule.AvailableSlots(schedule.SlotInput{
		Day:                  day,
		Windows:              windows,
		Service:              service,
		Appointments:         apps,
		ExcludeAppointmentID: in.ExcludeAppointmentID,
	}), nil
}
