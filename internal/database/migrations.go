package database

import (
	"fmt"

	"github.com/agrodash/plot-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the indexes the plot listings filter and sort on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		name    string
		columns string
	}{
		{&models.Plot{}, "idx_plots_status", "status"},
		{&models.Plot{}, "idx_plots_deleted_at", "deleted_at"},
		{&models.Plot{}, "idx_plots_crop_id", "crop_id"},
		{&models.Plot{}, "idx_plots_responsible_id", "responsible_id"},
		{&models.User{}, "idx_users_active", "active"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
