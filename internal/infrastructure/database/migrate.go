package database

import (
	"fmt"

	"clinical-assistant/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates missing tables and upgrades consultations tables written
// before bookings were owned by an account.
func Migrate(db *gorm.DB) error {
	m := db.Migrator()

	for _, model := range []interface{}{&entity.User{}, &entity.LoginEvent{}, &entity.Consultation{}} {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}

	if !m.HasColumn(&entity.Consultation{}, "patient_username") {
		logrus.Warn("consultations table has no patient_username column, upgrading")
		err := db.Exec(fmt.Sprintf(
			"ALTER TABLE consultations ADD COLUMN patient_username %s DEFAULT '%s'",
			indexedStringType(db.Dialector.Name()), entity.LegacyPatientUsername,
		)).Error
		if err != nil {
			return fmt.Errorf("add patient_username column: %w", err)
		}
	}

	if !m.HasIndex(&entity.Consultation{}, "PatientUsername") {
		if err := m.CreateIndex(&entity.Consultation{}, "PatientUsername"); err != nil {
			return fmt.Errorf("create patient_username index: %w", err)
		}
	}

	return nil
}

// indexedStringType is the column type for a string that carries an index.
// MySQL cannot index TEXT without a prefix length.
func indexedStringType(dialect string) string {
	if dialect == "sqlite" {
		return "TEXT"
	}
	return "VARCHAR(255)"
}
