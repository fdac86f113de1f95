package repository

import (
	"github.com/agrodash/plot-api/internal/models"
	"gorm.io/gorm"
)

// GormCropRepository is a GORM implementation of CropRepository
type GormCropRepository struct {
	db *gorm.DB
}

// NewCropRepository creates a new CropRepository
func NewCropRepository(db *gorm.DB) CropRepository {
	return &GormCropRepository{db: db}
}

// List lists all crops ordered by name
func (r *GormCropRepository) List() ([]models.Crop, error) {
	crops := []models.Crop{}
	if err := r.db.Order("name ASC").Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

// FindByID finds a crop by ID
func (r *GormCropRepository) FindByID(id uint64) (*models.Crop, error) {
	var crop models.Crop
	if err := r.db.First(&crop, id).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

// GormSensorRepository is a GORM implementation of SensorRepository
type GormSensorRepository struct {
	db *gorm.DB
}

// NewSensorRepository creates a new SensorRepository
func NewSensorRepository(db *gorm.DB) SensorRepository {
	return &GormSensorRepository{db: db}
}

// List lists all sensors
func (r *GormSensorRepository) List() ([]models.Sensor, error) {
	sensors := []models.Sensor{}
	if err := r.db.Order("id ASC").Find(&sensors).Error; err != nil {
		return nil, err
	}
	return sensors, nil
}
