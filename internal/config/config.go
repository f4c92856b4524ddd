package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Tracker TrackerConfig
	Dice    DiceConfig
}

// TrackerConfig holds tracker-specific configuration
type TrackerConfig struct {
	// NoColor disables ANSI colors in the rendered output
	NoColor bool
}

// DiceConfig holds dice roller configuration
type DiceConfig struct {
	// Seed for the roller's PRNG; 0 means seed from the clock
	Seed int64
}

// Load loads configuration from environment variables. Every variable is
// optional; the tool runs with an empty environment.
func Load() (*Config, error) {
	cfg := &Config{
		Tracker: TrackerConfig{
			NoColor: getEnvAsBool("TRACKER_NO_COLOR") || os.Getenv("NO_COLOR") != "",
		},
		Dice: DiceConfig{
			Seed: getEnvAsInt64OrDefault("TRACKER_DICE_SEED", 0),
		},
	}

	return cfg, nil
}

func getEnvAsBool(key string) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return false
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
