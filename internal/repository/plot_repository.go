package repository

import (
	"github.com/agrodash/plot-api/internal/database"
	"github.com/agrodash/plot-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPlotRepository is a GORM implementation of PlotRepository
type GormPlotRepository struct {
	db *gorm.DB
}

// NewPlotRepository creates a new PlotRepository
func NewPlotRepository(db *gorm.DB) PlotRepository {
	return &GormPlotRepository{db: db}
}

// Create inserts a new plot
func (r *GormPlotRepository) Create(plot *models.Plot) error {
	return r.db.Omit(clause.Associations).Create(plot).Error
}

// FindByID finds a plot by ID with relations
func (r *GormPlotRepository) FindByID(id uint64) (*models.Plot, error) {
	var plot models.Plot
	if err := r.db.Scopes(database.WithPlotRelations).First(&plot, id).Error; err != nil {
		return nil, err
	}
	return &plot, nil
}

// List retrieves plots with filtering
func (r *GormPlotRepository) List(filter PlotFilter) ([]models.Plot, error) {
	query := r.db.Model(&models.Plot{}).Scopes(database.WithPlotRelations)

	if filter.Status != nil {
		query = query.Scopes(database.PlotStatus(*filter.Status))
	}

	if filter.RecentlyDeletedFirst {
		query = query.Order("deleted_at DESC").Order("id DESC")
	} else {
		query = query.Order("id DESC")
	}

	if filter.Page.Limit > 0 {
		query = query.Limit(filter.Page.Limit).Offset(filter.Page.Offset)
	}

	plots := []models.Plot{}
	if err := query.Find(&plots).Error; err != nil {
		return nil, err
	}
	return plots, nil
}

// Update writes all plot columns to an existing row. A row removed in the
// meantime yields gorm.ErrRecordNotFound and is not recreated.
func (r *GormPlotRepository) Update(plot *models.Plot) error {
	result := r.db.Model(plot).Select("*").Omit(clause.Associations).Updates(plot)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete physically removes a plot
func (r *GormPlotRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Plot{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
