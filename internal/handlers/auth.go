package handlers

import (
	"errors"
	"net/http"

	"github.com/agrodash/plot-api/internal/dto"
	apierrors "github.com/agrodash/plot-api/internal/errors"
	"github.com/agrodash/plot-api/internal/middleware"
	"github.com/agrodash/plot-api/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates an account with the default role and returns a token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:  dto.ToSessionUserDTO(*result.User),
		Token: result.Token,
	})
}

// Login authenticates a user and returns a fresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.ToSessionUserDTO(*result.User),
		Token: result.Token,
	})
}

// Me returns the authenticated user as currently stored.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.Me(claims.UserID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionUserDTO(*user))
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Unauthorized(c, "User no longer exists")
	default:
		h.logger.Error("auth request failed",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.RequestID(c)),
		)
		apierrors.InternalError(c, "")
	}
}
