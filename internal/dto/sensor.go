package dto

import (
	"time"

	"github.com/agrodash/plot-api/internal/models"
)

// SensorDTO represents a catalogue entry
type SensorDTO struct {
	ID     uint64            `json:"id"`
	Kind   models.SensorKind `json:"kind"`
	Unit   string            `json:"unit"`
	Source string            `json:"source"`
}

// ReadingDTO is one averaged value of the live snapshot. A nil Value means
// the last poll for that sensor failed or returned nothing.
type ReadingDTO struct {
	Kind  models.SensorKind `json:"kind"`
	Unit  string            `json:"unit"`
	Value *float64          `json:"value"`
}

// LiveSnapshotDTO is the latest poll result
type LiveSnapshotDTO struct {
	UpdatedAt *time.Time   `json:"updatedAt"`
	Readings  []ReadingDTO `json:"readings"`
}

// ToSensorDTOs converts a slice of sensors
func ToSensorDTOs(sensors []models.Sensor) []SensorDTO {
	out := make([]SensorDTO, len(sensors))
	for i, s := range sensors {
		out[i] = SensorDTO{ID: s.ID, Kind: s.Kind, Unit: s.Unit, Source: s.Source}
	}
	return out
}
