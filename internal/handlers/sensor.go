package handlers

import (
	"net/http"

	"github.com/agrodash/plot-api/internal/dto"
	apierrors "github.com/agrodash/plot-api/internal/errors"
	"github.com/agrodash/plot-api/internal/sensors"
	"github.com/gin-gonic/gin"
)

// LiveSource provides the most recent sensor snapshot.
type LiveSource interface {
	Latest() (sensors.Snapshot, bool)
}

// SensorHandler serves live sensor readings.
type SensorHandler struct {
	live LiveSource
}

// NewSensorHandler creates a new SensorHandler. A nil source disables the
// live endpoint.
func NewSensorHandler(live LiveSource) *SensorHandler {
	return &SensorHandler{live: live}
}

// Live handles GET /api/sensors/live
func (h *SensorHandler) Live(c *gin.Context) {
	if h.live == nil {
		apierrors.ServiceUnavailable(c, "Live sensor feed is disabled")
		return
	}

	snapshot, ok := h.live.Latest()
	if !ok {
		apierrors.ServiceUnavailable(c, "No sensor data yet")
		return
	}

	updatedAt := snapshot.UpdatedAt
	out := dto.LiveSnapshotDTO{
		UpdatedAt: &updatedAt,
		Readings:  make([]dto.ReadingDTO, len(snapshot.Readings)),
	}
	for i, r := range snapshot.Readings {
		out.Readings[i] = dto.ReadingDTO{Kind: r.Kind, Unit: r.Unit, Value: r.Value}
	}
	c.JSON(http.StatusOK, out)
}
