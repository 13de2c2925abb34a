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

// ======================================================
// SHARED BOOKING RESOLUTION
// ======================================================

type BookingInput struct {
	ClientID   uint
	StaffID    uint
	ServiceID  uint
	AddOnIDs   []uint
	LocationID uint

	Date string // 2006-01-02
	Time string // 15:04

	Notes string
}

// booking is a fully resolved and validated booking request: entities loaded,
// start/end computed in the location's timezone, schedule checked.
type booking struct {
	location *models.Location
	staff    *models.Staff
	service  *models.Service
	addOns   []models.Service
	client   *models.Client

	start time.Time
	end   time.Time
}

// occupiedMinutes is the calendar footprint: base service duration plus
// buffers, extended by every add-on's nominal duration.
func occupiedMinutes(service *models.Service, addOns []models.Service) int {
	total := service.OccupiedMinutes()
	for _, ao := range addOns {
		total += ao.DurationMin
	}
	return total
}

func totalPrice(service *models.Service, addOns []models.Service) float64 {
	total := service.Price
	for _, ao := range addOns {
		total += ao.Price
	}
	return total
}

func staffOffersService(staff *models.Staff, serviceID uint) bool {
	for _, svc := range staff.Services {
		if svc.ID == serviceID {
			return true
		}
	}
	return false
}

// resolveBooking loads and validates everything a create or reschedule needs,
// except the time conflict check (that runs inside the repository's write
// transaction).
func resolveBooking(
	ctx context.Context,
	repo domain.Repository,
	in BookingInput,
) (*booking, error) {

	// --------------------------------------------------
	// 1. Location
	// --------------------------------------------------
	loc, err := repo.GetLocation(ctx, in.LocationID)
	if err != nil {
		return nil, httperr.ErrBusiness("location_not_found")
	}

	// --------------------------------------------------
	// 2. Staff
	// --------------------------------------------------
	staff, err := repo.GetStaff(ctx, in.StaffID)
	if err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}
	if !staff.Active {
		return nil, httperr.ErrBusiness("staff_inactive")
	}

	// --------------------------------------------------
	// 3. Service and add-ons
	// --------------------------------------------------
	service, err := repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !service.Active || service.IsAddOn {
		return nil, httperr.ErrBusiness("service_not_bookable")
	}
	if !staffOffersService(staff, service.ID) {
		return nil, httperr.ErrBusiness("service_not_offered")
	}

	addOns, err := repo.GetAddOns(ctx, in.AddOnIDs, service.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Client
	// --------------------------------------------------
	client, err := repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	// --------------------------------------------------
	// 5. Start / end in the location's timezone
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(loc.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if start.Before(timezone.NowIn(loc.Timezone)) {
		return nil, httperr.ErrBusiness("start_in_past")
	}

	occupied := occupiedMinutes(service, addOns)
	end := start.Add(time.Duration(occupied) * time.Minute)

	// --------------------------------------------------
	// 6. Schedule windows
	// --------------------------------------------------
	rules, err := repo.ListSchedules(ctx, in.StaffID, in.LocationID)
	if err != nil {
		return nil, err
	}
	windows := schedule.EffectiveWindows(rules, start, in.LocationID)

	// Windows and blocks only here. Overlap against other bookings is the
	// repository's job, inside the insert transaction, so the race window
	// stays closed and the caller gets time_conflict rather than a generic
	// schedule error.
	footprint := *service
	footprint.DurationMin = occupied - service.BufferBeforeMin - service.BufferAfterMin

	ok := schedule.Bookable(schedule.SlotInput{
		Day:     start,
		Windows: windows,
		Service: &footprint,
	}, start)
	if !ok {
		return nil, httperr.ErrBusiness("outside_schedule")
	}

	return &booking{
		location: loc,
		staff:    staff,
		service:  service,
		addOns:   addOns,
		client:   client,
		start:    start,
		end:      end,
	}, nil
}
