package services

import (
	"fmt"

	"github.com/agrodash/plot-api/internal/models"
	"github.com/agrodash/plot-api/internal/repository"
)

// CatalogService serves the read-only reference data the plot forms use:
// crops, assignable users and the sensor catalogue.
type CatalogService struct {
	cropRepo   repository.CropRepository
	userRepo   repository.UserRepository
	sensorRepo repository.SensorRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(cropRepo repository.CropRepository, userRepo repository.UserRepository, sensorRepo repository.SensorRepository) *CatalogService {
	return &CatalogService{
		cropRepo:   cropRepo,
		userRepo:   userRepo,
		sensorRepo: sensorRepo,
	}
}

func (s *CatalogService) ListCrops() ([]models.Crop, error) {
	crops, err := s.cropRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return crops, nil
}

func (s *CatalogService) ListActiveUsers() ([]models.User, error) {
	users, err := s.userRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *CatalogService) ListSensors() ([]models.Sensor, error) {
	sensors, err := s.sensorRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list sensors: %w", err)
	}
	return sensors, nil
}
