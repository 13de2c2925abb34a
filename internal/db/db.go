package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/config"
	"github.com/candraczapansky/software-sub012/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Location{},
		&models.User{},
		&models.Staff{},
		&models.Client{},
		&models.Service{},
		&models.Product{},
		&models.StaffSchedule{},
		&models.Appointment{},
		&models.AppointmentPhoto{},
		&models.Payment{},
		&models.GiftCard{},
		&models.GiftCardTransaction{},
		&models.PromoCode{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Hard no-double-booking invariant: at most one non-cancelled appointment
	// may occupy a staff+time interval. The application re-checks inside the
	// insert transaction, this constraint closes the remaining race.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to enable btree_gist: %v", err)
	}

	var overlapConstraints int64
	db.Raw(
		`SELECT count(*) FROM pg_constraint WHERE conname = 'appointments_no_staff_overlap'`,
	).Scan(&overlapConstraints)
	if overlapConstraints == 0 {
		err := db.Exec(`
            ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_staff_overlap
            EXCLUDE USING gist (
                staff_id WITH =,
                tsrange(start_time, end_time) WITH &&
            )
            WHERE (status <> 'cancelled')
        `).Error
		if err != nil {
			log.Fatalf("failed to add overlap constraint: %v", err)
		}
	}

	// Retry dedupe applies only to settlements that carry a key; keyless
	// payments record a blank key and must never collide with each other.
	err = db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_idempotency_key
        ON payments (idempotency_key)
        WHERE idempotency_key <> ''
    `).Error
	if err != nil {
		log.Fatalf("failed to add idempotency index: %v", err)
	}

	return db
}
