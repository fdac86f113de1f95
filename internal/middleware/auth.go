package middleware

import (
	"strings"

	"github.com/agrodash/plot-api/internal/constants"
	apierrors "github.com/agrodash/plot-api/internal/errors"
	"github.com/agrodash/plot-api/internal/models"
	"github.com/agrodash/plot-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RequireAuth checks the bearer token and stores its claims in the context.
// Any failure ends the request with 401.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			apierrors.Unauthorized(c, "Missing bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireRole lets the request through only when the authenticated user
// holds role. It must run after RequireAuth.
func RequireRole(role models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !claims.HasRole(role) {
			apierrors.Forbidden(c, "This action requires the "+string(role)+" role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c *gin.Context) (*services.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok && claims != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
