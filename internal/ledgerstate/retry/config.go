package retry

import (
	"os"
	"strconv"
	"time"
)

// Config holds retry configuration for the latest-ledger RPC lookup
type Config struct {
	Enabled      bool          // Enable/disable retry mechanism
	MaxRetries   int           // Maximum number of retry attempts
	InitialDelay time.Duration // Initial delay before first retry
	MaxDelay     time.Duration // Maximum delay between retries
}

// LoadConfig loads retry configuration from environment variables. The
// defaults stay small: a page request is waiting on this lookup.
func LoadConfig() Config {
	return Config{
		Enabled:      getEnvAsBool("RPC_RETRY_ENABLED", true),
		MaxRetries:   getEnvAsInt("RPC_RETRY_MAX_RETRIES", 2),
		InitialDelay: time.Duration(getEnvAsInt("RPC_RETRY_INITIAL_DELAY_MS", 100)) * time.Millisecond,
		MaxDelay:     time.Duration(getEnvAsInt("RPC_RETRY_MAX_DELAY_MS", 1000)) * time.Millisecond,
	}
}

// Helper: get bool from env
func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// Helper: get int from env
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
