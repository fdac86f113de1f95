package models

import (
	"errors"
	"time"
)

type PlotStatus string

const (
	PlotStatusActive  PlotStatus = "active"
	PlotStatusDeleted PlotStatus = "deleted"
)

// ErrInvalidStatus is returned for status values outside the known set.
var ErrInvalidStatus = errors.New("status must be one of: active, deleted")

// ParsePlotStatus validates a raw status string.
func ParsePlotStatus(s string) (PlotStatus, error) {
	switch PlotStatus(s) {
	case PlotStatusActive, PlotStatusDeleted:
		return PlotStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Plot is a georeferenced land unit. Deletion is a status flag: deleted plots
// stay in the table and are listed separately until hard-deleted.
type Plot struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Lat           float64    `gorm:"not null" json:"lat"`
	Lng           float64    `gorm:"not null" json:"lng"`
	AreaHa        float64    `gorm:"not null;default:0" json:"areaHa"`
	Status        PlotStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	DeletedAt     *time.Time `json:"deletedAt"`
	CropID        *uint64    `json:"cropId"`
	ResponsibleID *uint64    `json:"responsibleId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Relations
	Crop        *Crop `gorm:"foreignKey:CropID" json:"crop"`
	Responsible *User `gorm:"foreignKey:ResponsibleID" json:"responsible"`
}

// TransitionTo moves the plot to status and keeps DeletedAt consistent with it.
// A deleted plot keeps its first deletion stamp; active plots have none.
func (p *Plot) TransitionTo(status PlotStatus, now time.Time) error {
	if _, err := ParsePlotStatus(string(status)); err != nil {
		return err
	}

	switch status {
	case PlotStatusDeleted:
		if p.Status != PlotStatusDeleted || p.DeletedAt == nil {
			t := now
			p.DeletedAt = &t
		}
	case PlotStatusActive:
		p.DeletedAt = nil
	}
	p.Status = status
	return nil
}

// IsDeleted reports whether the plot is soft-deleted.
func (p *Plot) IsDeleted() bool {
	return p.Status == PlotStatusDeleted
}
