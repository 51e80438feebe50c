package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/config"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/models"
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
		&models.Practice{},
		&models.Doctor{},
		&models.Patient{},
		&models.ConsultationType{},
		&models.TimePlanDay{},
		&models.TimeSlotWindow{},
		&models.Event{},
		&models.TimeOffPeriod{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := ensureNoOverlapConstraint(db); err != nil {
		log.Fatalf("failed to install appointments overlap guard: %v", err)
	}

	return db
}

// noOverlapConstraintName identifie la garde anti double réservation côté
// base : deux rendez-vous actifs d'un même médecin ne peuvent pas se
// chevaucher. La violation remonte en 23P01 (httperr.IsExclusionConflict).
const noOverlapConstraintName = "appointments_no_overlap"

const noOverlapConstraintDDL = `
    ALTER TABLE appointments
    ADD CONSTRAINT ` + noOverlapConstraintName + `
    EXCLUDE USING gist (
        doctor_id WITH =,
        tsrange(start_time, end_time) WITH &&
    )
    WHERE (status <> 'cancelled' AND deleted_at IS NULL)
`

func ensureNoOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	var exists bool
	if err := db.Raw(
		`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`,
		noOverlapConstraintName,
	).Scan(&exists).Error; err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.Exec(noOverlapConstraintDDL).Error
}
