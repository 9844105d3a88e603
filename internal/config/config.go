package config

import (
	"os"
	"strconv"
	"time"

	"labelops/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Simulation SimulationConfig
	Seed       SeedConfig
	LogLevel   string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds dashboard server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// SimulationConfig holds labeling simulator knobs
type SimulationConfig struct {
	Seed           int64
	LabelBatchSize int
	MinLabels      int
	MaxLabels      int
}

// SeedConfig holds sample loader settings
type SeedConfig struct {
	SamplesCSV      string
	SampleLimit     int
	SampleBatchSize int
	LabelerProfiles string // optional YAML roster; empty means the built-in profiles
}

// Load reads configuration from environment variables and validates it.
// A missing DATABASE_URL is a configuration error.
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	config.Server = ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}

	config.Simulation = SimulationConfig{
		Seed:           getEnvInt64OrDefault("SIM_SEED", time.Now().UnixNano()),
		LabelBatchSize: getEnvIntOrDefault("SIM_LABEL_BATCH_SIZE", 500),
		MinLabels:      getEnvIntOrDefault("SIM_MIN_LABELS", 5),
		MaxLabels:      getEnvIntOrDefault("SIM_MAX_LABELS", 7),
	}

	config.Seed = SeedConfig{
		SamplesCSV:      getEnvOrDefault("SAMPLES_CSV", "data/IMDB Dataset.csv"),
		SampleLimit:     getEnvIntOrDefault("SAMPLE_LIMIT", 1000),
		SampleBatchSize: getEnvIntOrDefault("SAMPLE_BATCH_SIZE", 100),
		LabelerProfiles: os.Getenv("LABELER_PROFILES"),
	}

	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "INFO")

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:     url,
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.Simulation.LabelBatchSize <= 0 {
		return errors.ConfigInvalid("SIM_LABEL_BATCH_SIZE must be positive")
	}
	if config.Seed.SampleBatchSize <= 0 {
		return errors.ConfigInvalid("SAMPLE_BATCH_SIZE must be positive")
	}
	if config.Simulation.MinLabels <= 0 || config.Simulation.MaxLabels < config.Simulation.MinLabels {
		return errors.ConfigInvalid("SIM_MIN_LABELS/SIM_MAX_LABELS must satisfy 0 < min <= max")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
