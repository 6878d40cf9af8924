package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/facuperezm/barberia-sub000/internal/config"
	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, errs.Wrap(err, "connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.Wrap(err, "get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// Migrate creates the tables and the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	// Older databases may hold several overrides per barber and date. Keep the
	// newest so the unique index can be built.
	if db.Migrator().HasTable(&models.ScheduleOverride{}) {
		if err := db.Exec(`
            DELETE FROM schedule_overrides a
            USING schedule_overrides b
            WHERE a.barber_id = b.barber_id AND a.date = b.date AND a.id < b.id
        `).Error; err != nil {
			return errs.Wrap(err, "dedupe schedule overrides")
		}
	}

	if err := db.AutoMigrate(
		&models.Barber{},
		&models.Service{},
		&models.ScheduleOverride{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return errs.Wrap(err, "migrate")
	}

	// At most one live appointment per barber, date and start time. Overlaps
	// with different starts are rejected by the booking transaction.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_live_slot
        ON appointments (barber_id, date, time)
        WHERE status IN ('pending', 'confirmed')
    `).Error; err != nil {
		return errs.Wrap(err, "create live slot index")
	}

	if err := db.Exec(`
        ALTER TABLE services
        DROP CONSTRAINT IF EXISTS chk_services_duration_positive,
        ADD CONSTRAINT chk_services_duration_positive CHECK (duration_minutes > 0)
    `).Error; err != nil {
		return errs.Wrap(err, "create service duration check")
	}

	return nil
}
