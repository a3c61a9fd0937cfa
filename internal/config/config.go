// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the database (always absolute)
	Port     int
	DevMode  bool
	LogLevel string
	Anomaly  AnomalyConfig
}

// AnomalyConfig holds the tunables of the spending anomaly detector.
// The thresholds and window are deliberate configuration, not constants:
// their sensitivity depends on how volatile a household's spending is.
type AnomalyConfig struct {
	WindowMonths    int     // trailing window fed to the detector
	HighThreshold   float64 // current/average ratio at or above which severity is HIGH
	MediumThreshold float64
	LowThreshold    float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("PATHWISE_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:  absDataDir,
		Port:     getEnvAsInt("PORT", 8080),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Anomaly: AnomalyConfig{
			WindowMonths:    getEnvAsInt("ANOMALY_WINDOW_MONTHS", 3),
			HighThreshold:   getEnvAsFloat("ANOMALY_HIGH_THRESHOLD", 3.0),
			MediumThreshold: getEnvAsFloat("ANOMALY_MEDIUM_THRESHOLD", 2.0),
			LowThreshold:    getEnvAsFloat("ANOMALY_LOW_THRESHOLD", 1.5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is consistent
func (c *Config) Validate() error {
	a := c.Anomaly
	if a.WindowMonths < 2 {
		return fmt.Errorf("anomaly window must cover at least 2 months, got %d", a.WindowMonths)
	}
	if !(a.LowThreshold > 1.0 && a.MediumThreshold > a.LowThreshold && a.HighThreshold > a.MediumThreshold) {
		return fmt.Errorf("anomaly thresholds must satisfy 1.0 < low < medium < high, got %.2f/%.2f/%.2f",
			a.LowThreshold, a.MediumThreshold, a.HighThreshold)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
