// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	MongoDB MongoDBConfig
	Server  ServerConfig
	Logging LoggingConfig
	CORS    CORSConfig
	JWT     JWTConfig
	APIKey  string
}

// MongoDBConfig holds document store connection settings
type MongoDBConfig struct {
	Enabled                  bool
	URI                      string
	DBName                   string
	ConnectTimeout           time.Duration
	PingInterval             time.Duration
	ReconnectInitialInterval time.Duration
	ReconnectMaxInterval     time.Duration
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds settings for validating access tokens issued by the auth service
type JWTConfig struct {
	Secret string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}

	mongoCfg, err := loadMongoDB("MONGODB_")
	if err != nil {
		return nil, err
	}
	cfg.MongoDB = mongoCfg

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8083" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	// API key for service-to-service writes
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}
	cfg.APIKey = apiKey

	return cfg, nil
}

// loadMongoDB reads the document store settings using the given variable prefix.
// A missing or false enable flag leaves the store unconfigured, the remaining
// settings are still read so they can be reported.
func loadMongoDB(prefix string) (MongoDBConfig, error) {
	cfg := MongoDBConfig{}

	enabledStr := os.Getenv(prefix + "ENABLED")
	if enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return cfg, fmt.Errorf("invalid %sENABLED: %w", prefix, err)
		}
		cfg.Enabled = enabled
	}

	cfg.URI = os.Getenv(prefix + "URI")
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017" // default
	}

	cfg.DBName = os.Getenv(prefix + "DB_NAME")
	if cfg.DBName == "" {
		cfg.DBName = "trainer_lms" // default
	}

	durations := []struct {
		name     string
		fallback string
		target   *time.Duration
	}{
		{name: "CONNECT_TIMEOUT", fallback: "5s", target: &cfg.ConnectTimeout},
		{name: "PING_INTERVAL", fallback: "0s", target: &cfg.PingInterval},
		{name: "RECONNECT_INITIAL_INTERVAL", fallback: "500ms", target: &cfg.ReconnectInitialInterval},
		{name: "RECONNECT_MAX_INTERVAL", fallback: "30s", target: &cfg.ReconnectMaxInterval},
	}
	for _, d := range durations {
		value := os.Getenv(prefix + d.name)
		if value == "" {
			value = d.fallback
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s%s: %w", prefix, d.name, err)
		}
		if parsed < 0 {
			return cfg, fmt.Errorf("invalid %s%s: must not be negative", prefix, d.name)
		}
		*d.target = parsed
	}

	if cfg.ConnectTimeout == 0 {
		return cfg, fmt.Errorf("invalid %sCONNECT_TIMEOUT: must be positive", prefix)
	}
	if cfg.ReconnectMaxInterval < cfg.ReconnectInitialInterval {
		return cfg, fmt.Errorf("%sRECONNECT_MAX_INTERVAL must not be less than %sRECONNECT_INITIAL_INTERVAL", prefix, prefix)
	}

	return cfg, nil
}

// parseOrigins splits a comma-separated origins list.
// Defaults to allow all origins if nothing valid is given.
func parseOrigins(value string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
