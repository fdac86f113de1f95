package services

import (
	"testing"

	"github.com/agrodash/plot-api/internal/database"
	"github.com/agrodash/plot-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db      *gorm.DB
	auth    *AuthService
	plots   *PlotService
	catalog *CatalogService
	tokens  *TokenService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
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
	require.NoError(t, database.Seed(db, database.SeedAdmin{}))

	userRepo := repository.NewUserRepository(db)
	cropRepo := repository.NewCropRepository(db)
	plotRepo := repository.NewPlotRepository(db)
	sensorRepo := repository.NewSensorRepository(db)
	tokens := NewTokenService("test-secret", testTokenTTL)

	return serviceTestEnv{
		db:      db,
		auth:    NewAuthService(userRepo, tokens),
		plots:   NewPlotService(plotRepo, cropRepo, userRepo),
		catalog: NewCatalogService(cropRepo, userRepo, sensorRepo),
		tokens:  tokens,
	}
}

func ptr[T any](v T) *T {
	return &v
}
