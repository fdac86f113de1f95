package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/agrodash/plot-api/internal/database"
	"github.com/agrodash/plot-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestPlotRepository_ListFiltersAndOrders(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPlotRepository(db)

	crop := models.Crop{Name: "Trigo"}
	require.NoError(t, db.Create(&crop).Error)
	user := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "secret-hash", Active: true}
	require.NoError(t, db.Create(&user).Error)

	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	plots := []*models.Plot{
		{Name: "A", Lat: 1, Lng: 1, Status: models.PlotStatusActive, CropID: &crop.ID, ResponsibleID: &user.ID},
		{Name: "B", Lat: 2, Lng: 2, Status: models.PlotStatusDeleted, DeletedAt: &newer},
		{Name: "C", Lat: 3, Lng: 3, Status: models.PlotStatusDeleted, DeletedAt: &older},
		{Name: "D", Lat: 4, Lng: 4, Status: models.PlotStatusActive},
	}
	for _, p := range plots {
		require.NoError(t, repo.Create(p))
	}

	active := models.PlotStatusActive
	got, err := repo.List(PlotFilter{Status: &active})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "D", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
	require.NotNil(t, got[1].Crop)
	assert.Equal(t, "Trigo", got[1].Crop.Name)
	require.NotNil(t, got[1].Responsible)
	assert.Equal(t, "ana@example.com", got[1].Responsible.Email)
	assert.Empty(t, got[1].Responsible.PasswordHash)

	deleted := models.PlotStatusDeleted
	got, err = repo.List(PlotFilter{Status: &deleted, RecentlyDeletedFirst: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "C", got[1].Name)

	got, err = repo.List(PlotFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = repo.List(PlotFilter{Page: Page{Limit: 2, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestPlotRepository_UpdateDoesNotTouchAssociations(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPlotRepository(db)

	user := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "secret-hash", Active: true}
	require.NoError(t, db.Create(&user).Error)

	plot := &models.Plot{Name: "North", Lat: 1, Lng: 2, Status: models.PlotStatusActive, ResponsibleID: &user.ID}
	require.NoError(t, repo.Create(plot))

	loaded, err := repo.FindByID(plot.ID)
	require.NoError(t, err)
	loaded.Name = "North Field"
	require.NoError(t, repo.Update(loaded))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "secret-hash", stored.PasswordHash)

	reloaded, err := repo.FindByID(plot.ID)
	require.NoError(t, err)
	assert.Equal(t, "North Field", reloaded.Name)
}

func TestPlotRepository_UpdateAfterDeleteDoesNotRecreate(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPlotRepository(db)

	plot := &models.Plot{Name: "Gone", Lat: 1, Lng: 2, Status: models.PlotStatusDeleted}
	require.NoError(t, repo.Create(plot))

	loaded, err := repo.FindByID(plot.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(plot.ID))

	loaded.Name = "Back again"
	assert.ErrorIs(t, repo.Update(loaded), gorm.ErrRecordNotFound)

	var count int64
	db.Model(&models.Plot{}).Count(&count)
	assert.Zero(t, count)
}

func TestPlotRepository_UpdateClearsNullableColumns(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPlotRepository(db)

	crop := models.Crop{Name: "Soja"}
	require.NoError(t, db.Create(&crop).Error)
	now := time.Now()
	plot := &models.Plot{Name: "East", Lat: 1, Lng: 2, AreaHa: 4, Status: models.PlotStatusDeleted, DeletedAt: &now, CropID: &crop.ID}
	require.NoError(t, repo.Create(plot))

	loaded, err := repo.FindByID(plot.ID)
	require.NoError(t, err)
	loaded.CropID, loaded.Crop = nil, nil
	loaded.DeletedAt = nil
	loaded.Status = models.PlotStatusActive
	loaded.AreaHa = 0
	require.NoError(t, repo.Update(loaded))

	reloaded, err := repo.FindByID(plot.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CropID)
	assert.Nil(t, reloaded.Crop)
	assert.Nil(t, reloaded.DeletedAt)
	assert.Equal(t, models.PlotStatusActive, reloaded.Status)
	assert.Zero(t, reloaded.AreaHa)
}

func TestPlotRepository_Delete(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPlotRepository(db)

	plot := &models.Plot{Name: "Gone", Lat: 1, Lng: 2, Status: models.PlotStatusActive}
	require.NoError(t, repo.Create(plot))

	require.NoError(t, repo.Delete(plot.ID))

	_, err := repo.FindByID(plot.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(plot.ID), gorm.ErrRecordNotFound)
}

func TestPlotRepository_ListPropagatesDatabaseErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlotRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `plots`").WillReturnError(errors.New("connection reset"))

	_, err := repo.List(PlotFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlotRepository_DeleteMissingRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlotRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `plots`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
