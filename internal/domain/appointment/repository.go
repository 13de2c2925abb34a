package appointment

import (
	"context"
	"time"

	"github.com/candraczapansky/software-sub012/internal/models"
)

type Repository interface {
	// -------- Lookups --------
	GetLocation(
		ctx context.Context,
		id uint,
	) (*models.Location, error)

	GetStaff(
		ctx context.Context,
		id uint,
	) (*models.Staff, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// GetAddOns resolves add-on services and enforces compatibility with
	// the base service.
	GetAddOns(
		ctx context.Context,
		ids []uint,
		baseServiceID uint,
	) ([]models.Service, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// -------- Schedule --------
	ListSchedules(
		ctx context.Context,
		staffID uint,
		locationID uint,
	) ([]models.StaffSchedule, error)

	// -------- Appointments --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// ListActiveForDay returns the staff member's non-cancelled
	// appointments on [dayStart, dayEnd), ordered by start time.
	ListActiveForDay(
		ctx context.Context,
		staffID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListForRange(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListSeries(
		ctx context.Context,
		groupID string,
	) ([]models.Appointment, error)

	// CreateAppointment persists ap after re-running the conflict check
	// inside the same transaction. Returns the time_conflict business
	// error when the slot is already taken.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointment saves ap; when revalidate is set the conflict
	// check runs again excluding ap itself.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		revalidate bool,
	) error
}
