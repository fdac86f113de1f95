package handlers

import (
	"github.com/agrodash/plot-api/internal/middleware"
	"github.com/agrodash/plot-api/internal/models"
	"github.com/agrodash/plot-api/internal/repository"
	"github.com/agrodash/plot-api/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RouterDeps carries what the HTTP layer needs from the process.
type RouterDeps struct {
	DB     *gorm.DB
	Tokens *services.TokenService
	Live   LiveSource
	Public PublicConfig
	Logger *zap.Logger
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	plotRepo := repository.NewPlotRepository(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)
	cropRepo := repository.NewCropRepository(deps.DB)
	sensorRepo := repository.NewSensorRepository(deps.DB)

	authService := services.NewAuthService(userRepo, deps.Tokens)
	plotService := services.NewPlotService(plotRepo, cropRepo, userRepo)
	catalogService := services.NewCatalogService(cropRepo, userRepo, sensorRepo)

	authHandler := NewAuthHandler(authService, logger)
	plotHandler := NewPlotHandler(plotService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)
	sensorHandler := NewSensorHandler(deps.Live)
	healthHandler := NewHealthHandler(deps.DB, logger)
	configHandler := NewConfigHandler(deps.Public)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS())

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)
		api.GET("/config", configHandler.Get)

		api.GET("/crops", catalogHandler.ListCrops)
		api.GET("/users", catalogHandler.ListUsers)
		api.GET("/sensors", catalogHandler.ListSensors)
		api.GET("/sensors/live", sensorHandler.Live)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(deps.Tokens), authHandler.Me)
		}

		// Plot routes
		plots := api.Group("/plots")
		{
			plots.GET("", plotHandler.ListPlots)
			plots.GET("/deleted", plotHandler.ListDeletedPlots)
			plots.GET("/:id", plotHandler.GetPlot)
			plots.POST("", plotHandler.CreatePlot)
			plots.PUT("/:id", plotHandler.UpdatePlot)
			plots.DELETE("/:id", plotHandler.SoftDeletePlot)
			plots.PATCH("/:id/restore", plotHandler.RestorePlot)
			plots.DELETE("/:id/hard",
				middleware.RequireAuth(deps.Tokens),
				middleware.RequireRole(models.RoleAdmin),
				plotHandler.HardDeletePlot,
			)
		}
	}

	return r
}
