package db

import (
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// The report tables are owned by the spreadsheet import, so migrations only
// add the indexes the dashboard filters on, and only when the tables exist.

type tripDateIndex struct {
	OperationDate time.Time `gorm:"column:作業日期;index:idx_trip_operation_date"`
}

type alcoholTimeIndex struct {
	TestedAt time.Time `gorm:"column:時間;index:idx_alcohol_tested_at"`
}

func migrations(tripTable, alcoholTable string) []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID:       "202503220001_trip_operation_date_index",
			Migrate:  ensureIndex(tripTable, &tripDateIndex{}, "idx_trip_operation_date"),
			Rollback: dropIndex(tripTable, &tripDateIndex{}, "idx_trip_operation_date"),
		},
		{
			ID:       "202503220002_alcohol_tested_at_index",
			Migrate:  ensureIndex(alcoholTable, &alcoholTimeIndex{}, "idx_alcohol_tested_at"),
			Rollback: dropIndex(alcoholTable, &alcoholTimeIndex{}, "idx_alcohol_tested_at"),
		},
	}
}

func ensureIndex(table string, model interface{}, name string) gormigrate.MigrateFunc {
	return func(tx *gorm.DB) error {
		migrator := tx.Table(table).Migrator()
		if !migrator.HasTable(table) {
			return nil
		}
		if migrator.HasIndex(model, name) {
			return nil
		}
		return migrator.CreateIndex(model, name)
	}
}

func dropIndex(table string, model interface{}, name string) gormigrate.RollbackFunc {
	return func(tx *gorm.DB) error {
		migrator := tx.Table(table).Migrator()
		if !migrator.HasTable(table) || !migrator.HasIndex(model, name) {
			return nil
		}
		return migrator.DropIndex(model, name)
	}
}

func runMigrations(db *gorm.DB, tripTable, alcoholTable string) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations(tripTable, alcoholTable))
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
