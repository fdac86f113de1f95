package handlers

import (
	"errors"
	"net/http"

	"github.com/agrodash/plot-api/internal/dto"
	apierrors "github.com/agrodash/plot-api/internal/errors"
	"github.com/agrodash/plot-api/internal/middleware"
	"github.com/agrodash/plot-api/internal/repository"
	"github.com/agrodash/plot-api/internal/services"
	"github.com/agrodash/plot-api/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlotHandler exposes the plot lifecycle over HTTP.
type PlotHandler struct {
	plotService *services.PlotService
	logger      *zap.Logger
}

// NewPlotHandler creates a new PlotHandler.
func NewPlotHandler(plotService *services.PlotService, logger *zap.Logger) *PlotHandler {
	return &PlotHandler{
		plotService: plotService,
		logger:      logger,
	}
}

// ListPlots handles GET /api/plots?status=
func (h *PlotHandler) ListPlots(c *gin.Context) {
	plots, err := h.plotService.ListPlots(c.Query("status"), pageFrom(c))
	if err != nil {
		h.respondPlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlotDTOs(plots))
}

// ListDeletedPlots handles GET /api/plots/deleted
func (h *PlotHandler) ListDeletedPlots(c *gin.Context) {
	plots, err := h.plotService.ListDeletedPlots(pageFrom(c))
	if err != nil {
		h.respondPlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlotDTOs(plots))
}

// GetPlot handles GET /api/plots/:id
func (h *PlotHandler) GetPlot(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid plot ID")
		return
	}

	plot, err := h.plotService.GetPlot(id)
	if err != nil {
		h.respondPlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlotDTO(*plot))
}

// CreatePlot handles POST /api/plots
func (h *PlotHandler) CreatePlot(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := parseCreatePlot(body)
	if err != nil {
		respondFieldError(c, err)
		return
	}

	plot, err := h.plotService.CreatePlot(input)
	if err != nil {
		h.respondPlotError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlotDTO(*plot))
}

// UpdatePlot handles PUT /api/plots/:id. Only the fields present in the body
// change.
func (h *PlotHandler) UpdatePlot(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid plot ID")
		return
	}

	// Bind to a map so absent fields can be told apart from explicit nulls
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := parseUpdatePlot(body)
	if err != nil {
		respondFieldError(c, err)
		return
	}

	plot, err := h.plotService.UpdatePlot(id, input)
	if err != nil {
		h.respondPlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlotDTO(*plot))
}

// SoftDeletePlot handles DELETE /api/plots/:id
func (h *PlotHandler) SoftDeletePlot(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid plot ID")
		return
	}

	plot, err := h.plotService.SoftDeletePlot(id)
	if err != nil {
		h.respondPlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlotDTO(*plot))
}

// RestorePlot handles PATCH /api/plots/:id/restore
func (h *PlotHandler) RestorePlot(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid plot ID")
		return
	}

	plot, err := h.plotService.RestorePlot(id)
	if err != nil {
		h.respondPlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPlotDTO(*plot))
}

// HardDeletePlot handles DELETE /api/plots/:id/hard
func (h *PlotHandler) HardDeletePlot(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid plot ID")
		return
	}

	if err := h.plotService.HardDeletePlot(id); err != nil {
		h.respondPlotError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pageFrom applies ?page=&limit= when present.
func pageFrom(c *gin.Context) repository.Page {
	params, ok := utils.GetPaginationParams(c)
	if !ok {
		return repository.Page{}
	}
	return repository.Page{Limit: params.Limit, Offset: params.Offset}
}

func parseCreatePlot(body map[string]any) (services.CreatePlotInput, error) {
	var input services.CreatePlotInput
	var err error

	if input.Name, err = stringField(body, "name"); err != nil {
		return input, err
	}
	if input.Lat, err = numberField(body, "lat"); err != nil {
		return input, err
	}
	if input.Lng, err = numberField(body, "lng"); err != nil {
		return input, err
	}
	if input.AreaHa, err = numberField(body, "areaHa"); err != nil {
		return input, err
	}
	if input.CropID, _, err = idField(body, "cropId"); err != nil {
		return input, err
	}
	if input.ResponsibleID, _, err = idField(body, "responsibleId"); err != nil {
		return input, err
	}
	return input, nil
}

func parseUpdatePlot(body map[string]any) (services.UpdatePlotInput, error) {
	var input services.UpdatePlotInput
	var err error

	if input.Name, err = stringField(body, "name"); err != nil {
		return input, err
	}
	if input.Lat, err = numberField(body, "lat"); err != nil {
		return input, err
	}
	if input.Lng, err = numberField(body, "lng"); err != nil {
		return input, err
	}
	if input.AreaHa, err = numberField(body, "areaHa"); err != nil {
		return input, err
	}
	if input.Status, err = stringField(body, "status"); err != nil {
		return input, err
	}
	if input.CropID.ID, input.CropID.Set, err = idField(body, "cropId"); err != nil {
		return input, err
	}
	if input.ResponsibleID.ID, input.ResponsibleID.Set, err = idField(body, "responsibleId"); err != nil {
		return input, err
	}
	return input, nil
}

func (h *PlotHandler) respondPlotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPlotNotFound):
		apierrors.NotFound(c, "Plot not found")
	case errors.Is(err, services.ErrPlotNotDeleted):
		apierrors.Conflict(c, err.Error())
	default:
		h.logger.Error("plot request failed",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.RequestID(c)),
		)
		apierrors.InternalError(c, "")
	}
}
