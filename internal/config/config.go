// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pkordes/wandernote/internal/currency"
)

// Config holds all configuration values for the API server and CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// SupabaseJWTSecret verifies access tokens issued by the hosted auth
	// service. Required by the serve command; see RequireAuth.
	SupabaseJWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat is "json" (default) or "text" for coloured developer output.
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	GeocoderURL       string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration

	// DefaultBudgetCurrency applies to trips created without a budget currency.
	DefaultBudgetCurrency currency.Code
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first value that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		SupabaseJWTSecret:     os.Getenv("SUPABASE_JWT_SECRET"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             strings.ToLower(getEnv("LOG_FORMAT", "json")),
		CORSOrigins:           splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		GeocoderURL:           getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent:     getEnv("GEOCODER_USER_AGENT", "WanderNote/1.0 (travel planning app)"),
		DefaultBudgetCurrency: currency.ParseCode(getEnv("DEFAULT_BUDGET_CURRENCY", "TWD")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", os.Getenv("MAX_BODY_BYTES"))
	}
	cfg.MaxBodyBytes = maxBody

	timeout, err := time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("GEOCODER_TIMEOUT: %w", err)
	}
	cfg.GeocoderTimeout = timeout

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}

	if !currency.Default().IsSupported(cfg.DefaultBudgetCurrency) {
		return Config{}, fmt.Errorf("DEFAULT_BUDGET_CURRENCY: %w: %q", currency.ErrUnsupportedCurrency, cfg.DefaultBudgetCurrency)
	}

	return cfg, nil
}

// RequireAuth reports an error when the settings needed to verify access
// tokens are missing. Commands that serve authenticated routes call it.
func (c Config) RequireAuth() error {
	if c.SupabaseJWTSecret == "" {
		return errors.New("required environment variables not set: SUPABASE_JWT_SECRET")
	}
	return nil
}

// LoadDotEnv applies variables from the given .env files (default ".env")
// without overriding variables already present in the environment.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config.LoadDotEnv: %s: %w", f, err)
		}
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
