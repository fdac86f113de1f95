package repository

import (
	"github.com/agrodash/plot-api/internal/models"
)

// PlotRepository defines the interface for plot data access
type PlotRepository interface {
	// Create inserts a new plot
	Create(plot *models.Plot) error

	// FindByID finds a plot by ID with its crop and responsible user loaded
	FindByID(id uint64) (*models.Plot, error)

	// List retrieves plots matching the filter, relations loaded
	List(filter PlotFilter) ([]models.Plot, error)

	// Update writes every column of an existing plot; associations are not touched.
	// Returns gorm.ErrRecordNotFound when the row no longer exists
	Update(plot *models.Plot) error

	// Delete physically removes a plot
	Delete(id uint64) error
}

// Page is a limit/offset window over a listing. Limit 0 means unbounded.
type Page struct {
	Limit  int
	Offset int
}

// PlotFilter holds filtering options for listing plots
type PlotFilter struct {
	// Status restricts the listing; nil lists every plot
	Status *models.PlotStatus
	// RecentlyDeletedFirst orders by deleted_at descending instead of id descending
	RecentlyDeletedFirst bool
	// Page bounds the result; the zero Page returns every match
	Page Page
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithRole creates a user and assigns it the given role in a single transaction
	CreateWithRole(user *models.User, role models.RoleName) error

	// FindByID finds a user by ID with roles loaded
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email with roles loaded
	FindByEmail(email string) (*models.User, error)

	// EmailTaken reports whether email belongs to any user, removed ones included
	EmailTaken(email string) (bool, error)

	// ListActive lists active users ordered by name
	ListActive() ([]models.User, error)
}

// CropRepository defines the interface for crop data access
type CropRepository interface {
	// List lists all crops ordered by name
	List() ([]models.Crop, error)

	// FindByID finds a crop by ID
	FindByID(id uint64) (*models.Crop, error)
}

// SensorRepository defines the interface for the sensor catalogue
type SensorRepository interface {
	// List lists all sensors ordered by ID
	List() ([]models.Sensor, error)
}
