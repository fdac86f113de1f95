package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agrodash/plot-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultCrops is the crop catalogue seeded on first start.
var DefaultCrops = []string{"Maíz", "Trigo", "Soja"}

// SeedAdmin describes the optional administrator account created by Seed.
// An empty Password skips admin creation.
type SeedAdmin struct {
	Name     string
	Email    string
	Password string
}

// Seed inserts reference data (roles, crops, sensors) and the optional admin
// account. Running it twice changes nothing.
func Seed(db *gorm.DB, admin SeedAdmin) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range models.AllRoles {
			role := models.Role{Name: name}
			if err := tx.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", name, err)
			}
		}

		for _, name := range DefaultCrops {
			crop := models.Crop{Name: name}
			if err := tx.Where(models.Crop{Name: name}).FirstOrCreate(&crop).Error; err != nil {
				return fmt.Errorf("failed to seed crop %s: %w", name, err)
			}
		}

		for _, s := range models.DefaultSensors {
			sensor := s
			if err := tx.Where(models.Sensor{Kind: s.Kind}).FirstOrCreate(&sensor).Error; err != nil {
				return fmt.Errorf("failed to seed sensor %s: %w", s.Kind, err)
			}
		}

		if admin.Password == "" {
			return nil
		}
		return seedAdmin(tx, admin)
	})
}

func seedAdmin(tx *gorm.DB, admin SeedAdmin) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	var user models.User
	err := tx.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		user = models.User{Name: admin.Name, Email: email, PasswordHash: string(hash), Active: true}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	var role models.Role
	if err := tx.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("failed to load admin role: %w", err)
	}

	assignment := models.UserRole{UserID: user.ID, RoleID: role.ID}
	if err := tx.Where(assignment).FirstOrCreate(&assignment).Error; err != nil {
		return fmt.Errorf("failed to assign admin role: %w", err)
	}
	return nil
}
