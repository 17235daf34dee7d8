// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/itinerary/internal/domain"
)

// Config holds all configuration values for the API server and itinctl.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RoutingURL is the base URL of the routing service. Empty disables
	// travel enrichment entirely.
	RoutingURL string

	// RoutingTimeout caps a single routing call. Defaults to 5s.
	RoutingTimeout time.Duration

	// RoutingMode is the travel mode asked of the router. Defaults to walking.
	RoutingMode domain.TravelMethod

	// EnrichConcurrency bounds routing calls in flight per day. Defaults to 4.
	EnrichConcurrency int

	// MaxBodyBytes limits request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RoutingURL:  strings.TrimRight(os.Getenv("ROUTING_URL"), "/"),
		RoutingMode: domain.TravelMethod(strings.ToLower(getEnv("ROUTING_MODE", string(domain.TravelWalking)))),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.RoutingTimeout, err = time.ParseDuration(getEnv("ROUTING_TIMEOUT", "5s")); err != nil || cfg.RoutingTimeout <= 0 {
		return Config{}, fmt.Errorf("ROUTING_TIMEOUT: want a positive duration such as 5s, got %q", os.Getenv("ROUTING_TIMEOUT"))
	}
	if !cfg.RoutingMode.Valid() || cfg.RoutingMode == domain.TravelNone {
		return Config{}, fmt.Errorf("ROUTING_MODE: unknown travel mode %q", cfg.RoutingMode)
	}
	if cfg.EnrichConcurrency, err = strconv.Atoi(getEnv("ENRICH_CONCURRENCY", "4")); err != nil || cfg.EnrichConcurrency < 1 {
		return Config{}, fmt.Errorf("ENRICH_CONCURRENCY: want a positive integer, got %q", os.Getenv("ENRICH_CONCURRENCY"))
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes < 1 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES: want a positive integer, got %q", os.Getenv("MAX_BODY_BYTES"))
	}

	return cfg, nil
}

// EnrichmentEnabled reports whether a routing service is configured.
func (c Config) EnrichmentEnabled() bool {
	return c.RoutingURL != ""
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
