package handlers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	apierrors "github.com/agrodash/plot-api/internal/errors"
	"github.com/gin-gonic/gin"
)

// fieldError is a malformed request field. Its message is returned verbatim.
type fieldError struct {
	field   string
	message string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s %s", e.field, e.message)
}

// respondFieldError sends a 400 naming the offending field in details.
func respondFieldError(c *gin.Context, err error) {
	var fe *fieldError
	if errors.As(err, &fe) {
		apierrors.BadRequestWithDetails(c, fe.Error(), gin.H{"field": fe.field})
		return
	}
	apierrors.BadRequest(c, err.Error())
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// stringField returns nil when key is absent or null.
func stringField(body map[string]any, key string) (*string, error) {
	raw, ok := body[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &fieldError{key, "must be a string"}
	}
	return &s, nil
}

// numberField accepts JSON numbers and numeric strings. Absent, null and
// empty-string values yield nil.
func numberField(body map[string]any, key string) (*float64, error) {
	raw, ok := body[key]
	if !ok || raw == nil {
		return nil, nil
	}

	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &fieldError{key, "must be a number"}
		}
		value = parsed
	default:
		return nil, &fieldError{key, "must be a number"}
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, &fieldError{key, "must be a finite number"}
	}
	return &value, nil
}

// idField reports whether key was sent and, if so, the referenced id.
// null, 0 and "" are sent-but-empty and come back as (nil, true).
func idField(body map[string]any, key string) (*uint64, bool, error) {
	raw, ok := body[key]
	if !ok {
		return nil, false, nil
	}

	switch v := raw.(type) {
	case nil:
		return nil, true, nil
	case float64:
		if v == 0 {
			return nil, true, nil
		}
		if v < 0 || v != math.Trunc(v) || v >= 1<<63 {
			return nil, true, &fieldError{key, "must be a positive integer"}
		}
		id := uint64(v)
		return &id, true, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, true, nil
		}
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, true, &fieldError{key, "must be a positive integer"}
		}
		if id == 0 {
			return nil, true, nil
		}
		return &id, true, nil
	default:
		return nil, true, &fieldError{key, "must be a positive integer"}
	}
}
