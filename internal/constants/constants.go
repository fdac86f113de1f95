package constants

import "time"

// Context keys shared between middleware and handlers
const (
	ContextKeyClaims    = "auth_claims"
	ContextKeyRequestID = "request_id"
)

// Header names
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	BearerScheme        = "Bearer"
)

// Validation limits
const (
	MinPasswordLength = 6
	MinLatitude       = -90.0
	MaxLatitude       = 90.0
	MinLongitude      = -180.0
	MaxLongitude      = 180.0
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Defaults
const (
	DefaultTokenTTL           = 7 * 24 * time.Hour
	DefaultSensorPollInterval = 3 * time.Second
	DefaultSensorFetchTimeout = 5 * time.Second
	DefaultShutdownTimeout    = 10 * time.Second
	HealthPingTimeout         = 800 * time.Millisecond
)
