package dto

import (
	"time"

	"github.com/agrodash/plot-api/internal/models"
)

// CropDTO represents a crop in API responses
type CropDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// PlotDTO represents a plot with its crop and responsible user
type PlotDTO struct {
	ID            uint64            `json:"id"`
	Name          string            `json:"name"`
	Lat           float64           `json:"lat"`
	Lng           float64           `json:"lng"`
	AreaHa        float64           `json:"areaHa"`
	Status        models.PlotStatus `json:"status"`
	DeletedAt     *time.Time        `json:"deletedAt"`
	CropID        *uint64           `json:"cropId"`
	ResponsibleID *uint64           `json:"responsibleId"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Crop          *CropDTO          `json:"crop"`
	Responsible   *UserDTO          `json:"responsible"`
}

// ToCropDTO converts a Crop model to CropDTO
func ToCropDTO(crop models.Crop) CropDTO {
	return CropDTO{ID: crop.ID, Name: crop.Name}
}

// ToCropDTOs converts a slice of crops
func ToCropDTOs(crops []models.Crop) []CropDTO {
	out := make([]CropDTO, len(crops))
	for i, c := range crops {
		out[i] = ToCropDTO(c)
	}
	return out
}

// ToPlotDTO converts a Plot model to PlotDTO
func ToPlotDTO(plot models.Plot) PlotDTO {
	out := PlotDTO{
		ID:            plot.ID,
		Name:          plot.Name,
		Lat:           plot.Lat,
		Lng:           plot.Lng,
		AreaHa:        plot.AreaHa,
		Status:        plot.Status,
		DeletedAt:     plot.DeletedAt,
		CropID:        plot.CropID,
		ResponsibleID: plot.ResponsibleID,
		CreatedAt:     plot.CreatedAt,
		UpdatedAt:     plot.UpdatedAt,
	}
	if plot.Crop != nil {
		crop := ToCropDTO(*plot.Crop)
		out.Crop = &crop
	}
	if plot.Responsible != nil {
		user := ToUserDTO(*plot.Responsible)
		out.Responsible = &user
	}
	return out
}

// ToPlotDTOs converts a slice of plots
func ToPlotDTOs(plots []models.Plot) []PlotDTO {
	out := make([]PlotDTO, len(plots))
	for i, p := range plots {
		out[i] = ToPlotDTO(p)
	}
	return out
}
