package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agrodash/plot-api/internal/constants"
	apierrors "github.com/agrodash/plot-api/internal/errors"
	"github.com/agrodash/plot-api/internal/models"
	"github.com/agrodash/plot-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(tokens *services.TokenService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID})
	})
	r.GET("/protected", handlers...)
	return r
}

func issue(t *testing.T, tokens *services.TokenService, roles ...models.RoleName) string {
	t.Helper()
	user := &models.User{ID: 3, Name: "Ana", Email: "ana@example.com"}
	for _, r := range roles {
		user.Roles = append(user.Roles, models.Role{Name: r})
	}
	token, err := tokens.Issue(user)
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	r := newProtectedRouter(tokens)
	valid := issue(t, tokens, models.RoleUser)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(constants.HeaderAuthorization, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusUnauthorized {
				var body apierrors.APIError
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, apierrors.ErrCodeUnauthorized, body.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	r := newProtectedRouter(tokens, RequireRole(models.RoleAdmin))

	send := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, send(issue(t, tokens, models.RoleUser)))
	assert.Equal(t, http.StatusOK, send(issue(t, tokens, models.RoleUser, models.RoleAdmin)))
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(constants.HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderRequestID))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/api/plots", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/plots", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestCORS_SimpleRequest(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/api/plots", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/plots", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
