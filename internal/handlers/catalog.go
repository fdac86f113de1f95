package handlers

import (
	"net/http"

	"github.com/agrodash/plot-api/internal/dto"
	apierrors "github.com/agrodash/plot-api/internal/errors"
	"github.com/agrodash/plot-api/internal/middleware"
	"github.com/agrodash/plot-api/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves reference data for the plot forms.
type CatalogHandler struct {
	catalogService *services.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListCrops handles GET /api/crops
func (h *CatalogHandler) ListCrops(c *gin.Context) {
	crops, err := h.catalogService.ListCrops()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCropDTOs(crops))
}

// ListUsers handles GET /api/users
func (h *CatalogHandler) ListUsers(c *gin.Context) {
	users, err := h.catalogService.ListActiveUsers()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// ListSensors handles GET /api/sensors
func (h *CatalogHandler) ListSensors(c *gin.Context) {
	sensors, err := h.catalogService.ListSensors()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSensorDTOs(sensors))
}

func (h *CatalogHandler) internalError(c *gin.Context, err error) {
	h.logger.Error("catalog request failed",
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("request_id", middleware.RequestID(c)),
	)
	apierrors.InternalError(c, "")
}
