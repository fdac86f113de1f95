package database

import (
	"github.com/agrodash/plot-api/internal/models"
	"gorm.io/gorm"
)

// WithPlotRelations preloads the crop and a restricted projection of the
// responsible user. The password hash is never selected.
func WithPlotRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Crop").
		Preload("Responsible", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})
}

// PlotStatus restricts a plot query to one status.
func PlotStatus(status models.PlotStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}
