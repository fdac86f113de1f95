package repository

import (
	"testing"

	"github.com/agrodash/plot-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateWithRole(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash", Active: true}
	require.NoError(t, repo.CreateWithRole(user, models.RoleUser))
	assert.NotZero(t, user.ID)
	assert.Equal(t, []models.RoleName{models.RoleUser}, user.RoleNames())

	found, err := repo.FindByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, []models.RoleName{models.RoleUser}, found.RoleNames())

	var roles int64
	db.Model(&models.Role{}).Count(&roles)
	assert.EqualValues(t, 1, roles)
}

func TestUserRepository_CreateWithRole_DuplicateEmailRollsBack(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.CreateWithRole(&models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash", Active: true}, models.RoleUser))

	err := repo.CreateWithRole(&models.User{Name: "Other", Email: "ana@example.com", PasswordHash: "hash", Active: true}, models.RoleUser)
	assert.ErrorIs(t, err, ErrCreateUser)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var users, assignments int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.UserRole{}).Count(&assignments)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, assignments)
}

func TestUserRepository_EmailTaken(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash", Active: true}
	require.NoError(t, repo.CreateWithRole(user, models.RoleUser))

	taken, err := repo.EmailTaken("ana@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken("bob@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	// Removed users keep their email reserved
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)
	_, err = repo.FindByEmail("ana@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	taken, err = repo.EmailTaken("ana@example.com")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserRepository_ListActive(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	zoe := &models.User{Name: "Zoe", Email: "zoe@example.com", PasswordHash: "hash", Active: true}
	ana := &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash", Active: true}
	gone := &models.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hash", Active: true}
	for _, u := range []*models.User{zoe, ana, gone} {
		require.NoError(t, repo.CreateWithRole(u, models.RoleUser))
	}
	require.NoError(t, db.Model(gone).Update("active", false).Error)

	users, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].Name)
	assert.Equal(t, "Zoe", users[1].Name)

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
