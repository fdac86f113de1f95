package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotTransitionTo(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	p := &Plot{Status: PlotStatusActive}

	require.NoError(t, p.TransitionTo(PlotStatusDeleted, t0))
	assert.Equal(t, PlotStatusDeleted, p.Status)
	require.NotNil(t, p.DeletedAt)
	assert.Equal(t, t0, *p.DeletedAt)

	// deleting again keeps the first stamp
	require.NoError(t, p.TransitionTo(PlotStatusDeleted, t1))
	assert.Equal(t, t0, *p.DeletedAt)

	require.NoError(t, p.TransitionTo(PlotStatusActive, t1))
	assert.Equal(t, PlotStatusActive, p.Status)
	assert.Nil(t, p.DeletedAt)
}

func TestPlotTransitionTo_RepairsMissingStamp(t *testing.T) {
	now := time.Now()
	p := &Plot{Status: PlotStatusDeleted}

	require.NoError(t, p.TransitionTo(PlotStatusDeleted, now))
	require.NotNil(t, p.DeletedAt)
	assert.Equal(t, now, *p.DeletedAt)
}

func TestPlotTransitionTo_RejectsUnknownStatus(t *testing.T) {
	p := &Plot{Status: PlotStatusActive}

	err := p.TransitionTo(PlotStatus("archived"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, PlotStatusActive, p.Status)
	assert.Nil(t, p.DeletedAt)
}

func TestParsePlotStatus(t *testing.T) {
	for _, s := range []string{"active", "deleted"} {
		got, err := ParsePlotStatus(s)
		require.NoError(t, err)
		assert.Equal(t, PlotStatus(s), got)
	}

	for _, s := range []string{"", "Active", "removed"} {
		_, err := ParsePlotStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, s)
	}
}

func TestHasRole(t *testing.T) {
	roles := []RoleName{RoleUser}

	assert.True(t, HasRole(roles, RoleUser))
	assert.False(t, HasRole(roles, RoleAdmin))
	assert.False(t, HasRole([]RoleName{"superuser"}, "superuser"))
}
