package services

import (
	"testing"

	"github.com/agrodash/plot-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService(t *testing.T) {
	env := setupServiceTestEnv(t)

	crops, err := env.catalog.ListCrops()
	require.NoError(t, err)
	names := make([]string, 0, len(crops))
	for _, c := range crops {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Maíz", "Soja", "Trigo"}, names)

	sensors, err := env.catalog.ListSensors()
	require.NoError(t, err)
	require.Len(t, sensors, len(models.DefaultSensors))
	assert.Equal(t, models.SensorTemperature, sensors[0].Kind)

	_, err = env.auth.Register(RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	users, err := env.catalog.ListActiveUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana", users[0].Name)
}
