package repository

import (
	"errors"
	"fmt"

	"github.com/agrodash/plot-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrAssignRole is returned when the role assignment fails inside the registration transaction.
	ErrAssignRole = errors.New("user repository: assign role failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithRole creates a user and its role assignment atomically.
// The role row is created on demand so a fresh database still works.
func (r *GormUserRepository) CreateWithRole(user *models.User, roleName models.RoleName) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateUser, err)
		}

		role := models.Role{Name: roleName}
		if err := tx.Where(models.Role{Name: roleName}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrAssignRole, err)
		}

		if err := tx.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrAssignRole, err)
		}

		user.Roles = []models.Role{role}
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether any user, including a removed one, holds email.
// The unique index covers removed rows too.
func (r *GormUserRepository) EmailTaken(email string) (bool, error) {
	var count int64
	if err := r.db.Unscoped().Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActive lists active users
func (r *GormUserRepository) ListActive() ([]models.User, error) {
	users := []models.User{}
	if err := r.db.Where("active = ?", true).Order("name ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
