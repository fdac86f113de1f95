package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PublicConfig is the part of the server configuration a frontend needs to
// start: where the API lives and which map tile template to render.
type PublicConfig struct {
	APIBaseURL string `json:"apiBaseUrl"`
	TilesURL   string `json:"tilesUrl"`
}

type ConfigHandler struct {
	public PublicConfig
}

func NewConfigHandler(public PublicConfig) *ConfigHandler {
	return &ConfigHandler{public: public}
}

// Get handles GET /api/config
func (h *ConfigHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.public)
}
