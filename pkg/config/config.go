package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Extractor     ExtractorConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
	AllowedOrigins     string
}

type ExtractorConfig struct {
	// ResponsePolicy picks the success signal: "transactions" for the
	// generic pipeline, "metadata" for registry deployments.
	ResponsePolicy string
	// Marker filters bank-strategy rows to one counterparty. Empty keeps
	// every row.
	Marker string
	// SynonymsPath optionally overrides the built-in header synonym table.
	SynonymsPath string
	// RegistryPath optionally configures the bank registry from YAML.
	RegistryPath string
	// ArchiveDir enables archival of uploads and results when non-empty.
	ArchiveDir string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Optional .env file; real environment variables take precedence.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 100),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 200),
			AllowedOrigins:     getEnv("SERVER_ALLOWED_ORIGINS", "*"),
		},
		Extractor: ExtractorConfig{
			ResponsePolicy: getEnv("EXTRACTOR_RESPONSE_POLICY", "transactions"),
			Marker:         getEnv("EXTRACTOR_MARKER", ""),
			SynonymsPath:   getEnv("EXTRACTOR_SYNONYMS_PATH", ""),
			RegistryPath:   getEnv("EXTRACTOR_REGISTRY_PATH", ""),
			ArchiveDir:     getEnv("EXTRACTOR_ARCHIVE_DIR", ""),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	switch cfg.Extractor.ResponsePolicy {
	case "transactions", "metadata":
	default:
		return nil, fmt.Errorf("EXTRACTOR_RESPONSE_POLICY must be 'transactions' or 'metadata', got %q", cfg.Extractor.ResponsePolicy)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
