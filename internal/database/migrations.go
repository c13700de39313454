package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// declares. Only supported on PostgreSQL; other drivers rely on the model
// tag indexes alone.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task listing sorts by due date (nulls last) then creation time.
		{"tasks", "idx_tasks_user_due_date", "user_id, due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Vehicle listing sorts by per-user sequence.
		{"vehicles", "idx_vehicles_user_seq", "user_id, seq"},

		// Fuel record listing and chain building both scan one vehicle's
		// records by refuel time.
		{"fuel_records", "idx_fuel_records_vehicle_refuel", "vehicle_id, refuel_datetime"},
		{"fuel_records", "idx_fuel_records_user_refuel", "user_id, refuel_datetime"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.WithField("index", idx.name).Info("created index")
	}

	return nil
}
