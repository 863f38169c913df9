package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the document store configuration for integration tests.
// Settings are read from TEST_MONGODB_* variables. If TEST_MONGODB_URI is not set,
// returns a Config with a disabled store which allows tests to skip themselves.
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	// Try both possible paths
	_ = godotenv.Load("./../../configs/.env")
	_ = godotenv.Load()

	cfg := &Config{}
	if os.Getenv("TEST_MONGODB_URI") == "" {
		return cfg, nil
	}

	mongoCfg, err := loadMongoDB("TEST_MONGODB_")
	if err != nil {
		return nil, err
	}
	mongoCfg.Enabled = true
	cfg.MongoDB = mongoCfg

	return cfg, nil
}
