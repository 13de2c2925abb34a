package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/candraczapansky/software-sub012/internal/domain/appointment"
	"github.com/candraczapansky/software-sub012/internal/httperr"
	"github.com/candraczapansky/software-sub012/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *AppointmentGormRepository) GetLocation(
	ctx context.Context,
	id uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&st, id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetAddOns(
	ctx context.Context,
	ids []uint,
	baseServiceID uint,
) ([]models.Service, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var addOns []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND is_add_on = true AND active = true", ids).
		Find(&addOns).Error; err != nil {
		return nil, err
	}

	if len(addOns) != len(ids) {
		return nil, httperr.ErrBusiness("add_on_not_found")
	}

	// An add-on with no compatibility rows attaches to any base service;
	// otherwise the base service has to be listed.
	for _, ao := range addOns {
		var total int64
		if err := r.db.WithContext(ctx).
			Table("service_add_ons").
			Where("add_on_id = ?", ao.ID).
			Count(&total).Error; err != nil {
			return nil, err
		}
		if total == 0 {
			continue
		}

		var matched int64
		if err := r.db.WithContext(ctx).
			Table("service_add_ons").
			Where("add_on_id = ? AND base_service_id = ?", ao.ID, baseServiceID).
			Count(&matched).Error; err != nil {
			return nil, err
		}
		if matched == 0 {
			return nil, httperr.ErrBusiness("add_on_incompatible")
		}
	}

	return addOns, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) ListSchedules(
	ctx context.Context,
	staffID uint,
	locationID uint,
) ([]models.StaffSchedule, error) {

	q := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID)

	if locationID != 0 {
		q = q.Where("location_id = ? OR location_id = 0", locationID)
	}

	var rules []models.StaffSchedule
	if err := q.Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Preload("Service").
		Preload("AddOns").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListActiveForDay(
	ctx context.Context,
	staffID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"staff_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			staffID, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForRange(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("AddOns").
		Where("start_time >= ? AND start_time < ?", start, end)

	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListSeries(
	ctx context.Context,
	groupID string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("recurring_group_id = ?", groupID).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// CreateAppointment re-runs the conflict check inside the insert transaction,
// locking the staff member's overlapping rows so two concurrent bookings
// cannot both pass. The exclusion constraint on appointments backstops the
// check; its violation maps to the same business error.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoTimeConflict(tx, ap.StaffID, ap.StartTime, ap.EndTime, 0); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	revalidate bool,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if revalidate {
			if err := assertNoTimeConflict(tx, ap.StaffID, ap.StartTime, ap.EndTime, ap.ID); err != nil {
				return err
			}
		}
		return tx.Save(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

func assertNoTimeConflict(
	tx *gorm.DB,
	staffID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	q := tx.Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?",
			staffID, end, start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
