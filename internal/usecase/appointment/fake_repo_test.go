package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
)

// fakeRepo is an in-memory Repository for usecase tests. The conflict gate
// mirrors the real one: overlap against non-cancelled rows only.
type fakeRepo struct {
	locations map[uint]*models.Location
	staff     map[uint]*models.Staff
	services  map[uint]*models.Service
	clients   map[uint]*models.Client
	schedules []models.StaffSchedule

	// compat maps add-on id to permitted base service ids; an absent entry
	// means the add-on attaches anywhere.
	compat map[uint][]uint

	appointments []*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		locations: map[uint]*models.Location{},
		staff:     map[uint]*models.Staff{},
		services:  map[uint]*models.Service{},
		clients:   map[uint]*models.Client{},
		compat:    map[uint][]uint{},
		nextID:    1,
	}
}

var errNotFound = errors.New("record not found")

func (f *fakeRepo) GetLocation(_ context.Context, id uint) (*models.Location, error) {
	if loc, ok := f.locations[id]; ok {
		return loc, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetStaff(_ context.Context, id uint) (*models.Staff, error) {
	if st, ok := f.staff[id]; ok {
		return st, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if svc, ok := f.services[id]; ok {
		return svc, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetAddOns(_ context.Context, ids []uint, baseServiceID uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Service
	for _, id := range ids {
		svc, ok := f.services[id]
		if !ok || !svc.IsAddOn || !svc.Active {
			return nil, httperr.ErrBusiness("add_on_not_found")
		}
		if bases, restricted := f.compat[id]; restricted {
			matched := false
			for _, b := range bases {
				if b == baseServiceID {
					matched = true
					break
				}
			}
			if !matched {
				return nil, httperr.ErrBusiness("add_on_incompatible")
			}
		}
		out = append(out, *svc)
	}
	return out, nil
}

func (f *fakeRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListSchedules(_ context.Context, staffID uint, _ uint) ([]models.StaffSchedule, error) {
	var out []models.StaffSchedule
	for _, rule := range f.schedules {
		if rule.StaffID == staffID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListActiveForDay(_ context.Context, staffID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StaffID != staffID || !domain.IsActive(ap.Status) {
			continue
		}
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListForRange(_ context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if staffID != 0 && ap.StaffID != staffID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListSeries(_ context.Context, groupID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.RecurringGroupID != nil && *ap.RecurringGroupID == groupID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.hasConflict(ap.StaffID, ap.StartTime, ap.EndTime, 0) {
		return httperr.ErrBusiness("time_conflict")
	}
	ap.ID = f.nextID
	f.nextID++
	cp := *ap
	f.appointments = append(f.appointments, &cp)
	return nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment, revalidate bool) error {
	if revalidate && f.hasConflict(ap.StaffID, ap.StartTime, ap.EndTime, ap.ID) {
		return httperr.ErrBusiness("time_conflict")
	}
	for i, existing := range f.appointments {
		if existing.ID == ap.ID {
			cp := *ap
			f.appointments[i] = &cp
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRepo) hasConflict(staffID uint, start, end time.Time, excludeID uint) bool {
	for _, ap := range f.appointments {
		if ap.StaffID != staffID || ap.ID == excludeID || !domain.IsActive(ap.Status) {
			continue
		}
		if start.Before(ap.EndTime) && ap.StartTime.Before(end) {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*fakeRepo)(nil)

// seedSalon loads one location, one staff member offering a 60-minute
// service, a client, and a daily 09:00-17:00 schedule starting well in the
// past.
func seedSalon(f *fakeRepo) {
	f.locations[1] = &models.Location{ID: 1, Name: "Main", Timezone: "America/Chicago", TaxRate: 0.08, Active: true}

	f.services[1] = &models.Service{ID: 1, Name: "Signature Facial", DurationMin: 60, Price: 100, Active: true}
	f.services[2] = &models.Service{ID: 2, Name: "Eye Mask", DurationMin: 15, Price: 25, IsAddOn: true, Active: true}

	f.staff[1] = &models.Staff{
		ID: 1, Active: true,
		Services: []models.Service{*f.services[1]},
	}

	f.clients[1] = &models.Client{ID: 1, Name: "Dana Reyes", Phone: "555-0101"}

	since := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for wd := 0; wd <= 6; wd++ {
		f.schedules = append(f.schedules, models.StaffSchedule{
			StaffID: 1, Weekday: wd,
			StartTime: "09:00", EndTime: "17:00",
			StartDate: since,
		})
	}
}
