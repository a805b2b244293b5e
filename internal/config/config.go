package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Postgres connection string for the contract_data database
	DatabaseURL string

	// RPC Server URL for the latest-ledger lookup
	RPCServerURL string

	// Port for the HTTP API
	APIPort int

	// Log level ( debug, info, warn, error )
	LogLevel string

	// How long a fetched latest-ledger sequence stays fresh
	LedgerCacheTTL time.Duration
}

// Load returns the configuration from environment variables
func Load() *Config {
	return &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RPCServerURL:   getEnv("RPC_SERVER_URL", "https://soroban-testnet.stellar.org"),
		APIPort:        getEnvAsInt("API_PORT", 8080),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LedgerCacheTTL: time.Duration(getEnvAsInt("LEDGER_CACHE_TTL_SEC", 5)) * time.Second,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.RPCServerURL == "" {
		return fmt.Errorf("RPC_SERVER_URL is required")
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("API_PORT must be a valid port number, got %d", c.APIPort)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
