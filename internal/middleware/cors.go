package middleware

import (
	"time"

	"github.com/agrodash/plot-api/internal/constants"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS reflects the caller's origin and allows credentials, so the dashboard
// can be served from any host during development.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{constants.HeaderAuthorization, "Content-Type", constants.HeaderRequestID},
		ExposeHeaders:    []string{constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	})
}
