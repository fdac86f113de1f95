package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/agrodash/plot-api/internal/constants"
)

const (
	devJWTSecret        = "dev-secret-change-me"
	defaultSensorAPIURL = "https://sensores-async-api.onrender.com"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret    string
	JWTExpiresIn time.Duration

	SensorAPIURL       string
	SensorPollInterval time.Duration

	APIBaseURL string
	TilesURL   string

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment, after merging an optional .env file.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "3000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:     getEnv("DB_PATH", "plots.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", ""),
		DBUser:     getEnv("DB_USER", "plotuser"),
		DBPassword: getEnv("DB_PASSWORD", "plotpassword"),
		DBName:     getEnv("DB_NAME", "plots"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		// Set but empty disables the live sensor feed.
		SensorAPIURL: strings.TrimRight(lookupEnv("SENSOR_API_URL", defaultSensorAPIURL), "/"),

		APIBaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000/api"), "/"),
		TilesURL:   getEnv("TILES_URL", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"),

		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	var err error
	cfg.JWTExpiresIn, err = ParseDuration(getEnv("JWT_EXPIRES_IN", constants.DefaultTokenTTL.String()))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	cfg.SensorPollInterval, err = ParseDuration(getEnv("SENSOR_POLL_INTERVAL", constants.DefaultSensorPollInterval.String()))
	if err != nil {
		return nil, fmt.Errorf("SENSOR_POLL_INTERVAL: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsRelease() {
			return nil, fmt.Errorf("JWT_SECRET is required in release mode")
		}
		cfg.JWTSecret = devJWTSecret
	}

	switch cfg.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBPort == "" {
		cfg.DBPort = defaultDBPort(cfg.DBDriver)
	}

	return cfg, nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// UsingDevSecret reports whether the built-in development secret is in use.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

// ParseDuration accepts Go durations ("90m", "24h") and whole days ("7d").
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", value)
	}
	return d, nil
}

func defaultDBPort(driver string) string {
	switch driver {
	case "mysql":
		return "3306"
	case "postgres":
		return "5432"
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// lookupEnv is getEnv for settings where an explicit empty value is meaningful.
func lookupEnv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
