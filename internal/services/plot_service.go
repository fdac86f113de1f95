package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agrodash/plot-api/internal/constants"
	"github.com/agrodash/plot-api/internal/models"
	"github.com/agrodash/plot-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPlotNotFound   = errors.New("plot not found")
	ErrPlotNotDeleted = errors.New("only deleted plots can be removed permanently")
)

// StatusFilterAll lists plots regardless of status.
const StatusFilterAll = "all"

// PlotService handles the plot lifecycle: create, update, soft delete,
// restore and hard delete. Status changes always go through
// models.Plot.TransitionTo so status and deletedAt never disagree.
//
// Reads and writes are check-then-write with no locking; concurrent updates
// to the same plot resolve as last write wins.
type PlotService struct {
	plotRepo repository.PlotRepository
	cropRepo repository.CropRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewPlotService creates a new PlotService
func NewPlotService(plotRepo repository.PlotRepository, cropRepo repository.CropRepository, userRepo repository.UserRepository) *PlotService {
	return &PlotService{
		plotRepo: plotRepo,
		cropRepo: cropRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// OptionalID distinguishes "leave unchanged" (Set false) from "clear"
// (Set true, ID nil) and "connect" (Set true, ID non-nil).
type OptionalID struct {
	Set bool
	ID  *uint64
}

// CreatePlotInput represents input for creating a plot. Nil pointers are
// absent fields.
type CreatePlotInput struct {
	Name          *string
	Lat           *float64
	Lng           *float64
	AreaHa        *float64
	CropID        *uint64
	ResponsibleID *uint64
}

// UpdatePlotInput represents input for updating a plot. Nil pointers keep the
// stored value.
type UpdatePlotInput struct {
	Name          *string
	Lat           *float64
	Lng           *float64
	AreaHa        *float64
	Status        *string
	CropID        OptionalID
	ResponsibleID OptionalID
}

// ListPlots returns plots for a raw status filter: "" or "active" lists
// active plots, "deleted" deleted ones, "all" every plot.
func (s *PlotService) ListPlots(status string, page repository.Page) ([]models.Plot, error) {
	filter := repository.PlotFilter{Page: page}

	switch status {
	case "":
		active := models.PlotStatusActive
		filter.Status = &active
	case StatusFilterAll:
	default:
		parsed, err := models.ParsePlotStatus(status)
		if err != nil {
			return nil, invalid(err.Error())
		}
		filter.Status = &parsed
	}

	plots, err := s.plotRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list plots: %w", err)
	}
	return plots, nil
}

// ListDeletedPlots returns soft-deleted plots, most recently deleted first.
func (s *PlotService) ListDeletedPlots(page repository.Page) ([]models.Plot, error) {
	deleted := models.PlotStatusDeleted
	plots, err := s.plotRepo.List(repository.PlotFilter{Status: &deleted, RecentlyDeletedFirst: true, Page: page})
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted plots: %w", err)
	}
	return plots, nil
}

// GetPlot returns a plot with its relations.
func (s *PlotService) GetPlot(id uint64) (*models.Plot, error) {
	return s.findPlot(id)
}

// CreatePlot validates input and stores a new active plot.
func (s *PlotService) CreatePlot(input CreatePlotInput) (*models.Plot, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" || input.Lat == nil || input.Lng == nil {
		return nil, invalid("name, lat and lng are required")
	}
	if err := validateCoordinates(*input.Lat, *input.Lng); err != nil {
		return nil, err
	}

	plot := &models.Plot{
		Name:   strings.TrimSpace(*input.Name),
		Lat:    *input.Lat,
		Lng:    *input.Lng,
		Status: models.PlotStatusActive,
	}
	if input.AreaHa != nil {
		if err := validateArea(*input.AreaHa); err != nil {
			return nil, err
		}
		plot.AreaHa = *input.AreaHa
	}

	if err := s.connect(plot, OptionalID{Set: true, ID: input.CropID}, OptionalID{Set: true, ID: input.ResponsibleID}); err != nil {
		return nil, err
	}

	if err := s.plotRepo.Create(plot); err != nil {
		return nil, fmt.Errorf("failed to create plot: %w", err)
	}

	return s.findPlot(plot.ID)
}

// UpdatePlot merges the provided fields into the stored plot.
func (s *PlotService) UpdatePlot(id uint64, input UpdatePlotInput) (*models.Plot, error) {
	plot, err := s.findPlot(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		plot.Name = name
	}
	lat, lng := plot.Lat, plot.Lng
	if input.Lat != nil {
		lat = *input.Lat
	}
	if input.Lng != nil {
		lng = *input.Lng
	}
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	plot.Lat, plot.Lng = lat, lng

	if input.AreaHa != nil {
		if err := validateArea(*input.AreaHa); err != nil {
			return nil, err
		}
		plot.AreaHa = *input.AreaHa
	}

	if input.Status != nil {
		if err := plot.TransitionTo(models.PlotStatus(*input.Status), s.now()); err != nil {
			return nil, invalid(err.Error())
		}
	}

	if err := s.connect(plot, input.CropID, input.ResponsibleID); err != nil {
		return nil, err
	}

	return s.save(plot)
}

// SoftDeletePlot marks a plot deleted.
func (s *PlotService) SoftDeletePlot(id uint64) (*models.Plot, error) {
	return s.transition(id, models.PlotStatusDeleted)
}

// RestorePlot marks a deleted plot active again.
func (s *PlotService) RestorePlot(id uint64) (*models.Plot, error) {
	return s.transition(id, models.PlotStatusActive)
}

// HardDeletePlot permanently removes a plot that is already soft-deleted.
func (s *PlotService) HardDeletePlot(id uint64) error {
	plot, err := s.findPlot(id)
	if err != nil {
		return err
	}
	if !plot.IsDeleted() {
		return ErrPlotNotDeleted
	}

	if err := s.plotRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlotNotFound
		}
		return fmt.Errorf("failed to delete plot: %w", err)
	}
	return nil
}

func (s *PlotService) transition(id uint64, status models.PlotStatus) (*models.Plot, error) {
	plot, err := s.findPlot(id)
	if err != nil {
		return nil, err
	}

	if err := plot.TransitionTo(status, s.now()); err != nil {
		return nil, invalid(err.Error())
	}

	return s.save(plot)
}

func (s *PlotService) save(plot *models.Plot) (*models.Plot, error) {
	if err := s.plotRepo.Update(plot); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlotNotFound
		}
		return nil, fmt.Errorf("failed to update plot: %w", err)
	}
	return s.findPlot(plot.ID)
}

func (s *PlotService) findPlot(id uint64) (*models.Plot, error) {
	plot, err := s.plotRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlotNotFound
		}
		return nil, fmt.Errorf("failed to find plot: %w", err)
	}
	return plot, nil
}

// connect applies association changes after checking the referenced rows exist.
func (s *PlotService) connect(plot *models.Plot, crop, responsible OptionalID) error {
	if crop.Set {
		if crop.ID == nil || *crop.ID == 0 {
			plot.CropID, plot.Crop = nil, nil
		} else {
			if _, err := s.cropRepo.FindByID(*crop.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return invalid(fmt.Sprintf("crop %d does not exist", *crop.ID))
				}
				return fmt.Errorf("failed to find crop: %w", err)
			}
			id := *crop.ID
			plot.CropID, plot.Crop = &id, nil
		}
	}

	if responsible.Set {
		if responsible.ID == nil || *responsible.ID == 0 {
			plot.ResponsibleID, plot.Responsible = nil, nil
		} else {
			if _, err := s.userRepo.FindByID(*responsible.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return invalid(fmt.Sprintf("user %d does not exist", *responsible.ID))
				}
				return fmt.Errorf("failed to find user: %w", err)
			}
			id := *responsible.ID
			plot.ResponsibleID, plot.Responsible = &id, nil
		}
	}

	return nil
}

func validateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < constants.MinLatitude || lat > constants.MaxLatitude {
		return invalid("lat must be between -90 and 90")
	}
	if math.IsNaN(lng) || lng < constants.MinLongitude || lng > constants.MaxLongitude {
		return invalid("lng must be between -180 and 180")
	}
	return nil
}

func validateArea(area float64) error {
	if math.IsNaN(area) || area < 0 {
		return invalid("areaHa cannot be negative")
	}
	return nil
}
