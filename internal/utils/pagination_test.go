package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/agrodash/plot-api/internal/constants"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name   string
		query  string
		want   PaginationParams
		wantOK bool
	}{
		{"absent", "", PaginationParams{}, false},
		{"page and limit", "?page=3&limit=10", PaginationParams{Page: 3, Limit: 10, Offset: 20}, true},
		{"limit only", "?limit=5", PaginationParams{Page: 1, Limit: 5, Offset: 0}, true},
		{"page only", "?page=2", PaginationParams{Page: 2, Limit: constants.DefaultPageSize, Offset: constants.DefaultPageSize}, true},
		{"invalid values", "?page=-4&limit=abc", PaginationParams{Page: 1, Limit: constants.DefaultPageSize, Offset: 0}, true},
		{"limit too large", "?limit=100000", PaginationParams{Page: 1, Limit: constants.DefaultPageSize, Offset: 0}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/plots"+tc.query, nil)

			got, ok := GetPaginationParams(c)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
