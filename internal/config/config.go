package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"peoplelens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig `validate:"required"`
	Data   DataConfig   `validate:"required"`
	Model  ModelConfig  `validate:"required"`
	Charts ChartConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required"`
	GinMode string
}

// DataConfig holds the dataset source settings
type DataConfig struct {
	// Path to the cleaned employee table, .csv or .xlsx by extension.
	Path string `validate:"required"`
	// SheetName selects the worksheet for xlsx sources. Empty means the
	// first sheet.
	SheetName string
}

// ModelConfig holds the model artifact settings
type ModelConfig struct {
	// Path to the serialized attrition model (JSON tree ensemble).
	Path string `validate:"required"`
}

// ChartConfig holds the PNG rendering knobs
type ChartConfig struct {
	// RenderLimit bounds how many chart encodes may run at once.
	RenderLimit int
	// RatePerSec is the token-bucket refill rate for chart endpoints.
	RatePerSec float64
	// Burst is the token-bucket size for chart endpoints.
	Burst int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	// Load server configuration
	serverConfig := loadServerConfig()
	config.Server = *serverConfig

	// Load data configuration
	dataConfig, err := loadDataConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load data configuration")
	}
	config.Data = *dataConfig

	// Load model configuration
	modelConfig, err := loadModelConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model configuration")
	}
	config.Model = *modelConfig

	// Load chart configuration
	chartConfig := loadChartConfig()
	config.Charts = *chartConfig

	// Validate required fields
	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() (*DataConfig, error) {
	path := getEnvOrDefault("DATA_PATH", "data/employees.csv")
	if path == "" {
		return nil, errors.ConfigInvalid("DATA_PATH is required")
	}

	return &DataConfig{
		Path:      path,
		SheetName: getEnvOrDefault("DATA_SHEET", ""),
	}, nil
}

func loadModelConfig() (*ModelConfig, error) {
	path := getEnvOrDefault("MODEL_PATH", "models/attrition_model.json")
	if path == "" {
		return nil, errors.ConfigInvalid("MODEL_PATH is required")
	}

	return &ModelConfig{Path: path}, nil
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		RenderLimit: getEnvIntOrDefault("CHART_RENDER_LIMIT", 4),
		RatePerSec:  getEnvFloatOrDefault("CHART_RATE_PER_SEC", 20),
		Burst:       getEnvIntOrDefault("CHART_RATE_BURST", 40),
	}
}

func validateConfig(config *Config) error {
	if config.Data.Path == "" {
		return errors.ConfigInvalid("dataset path is required")
	}
	switch strings.ToLower(filepath.Ext(config.Data.Path)) {
	case ".csv", ".xlsx":
	default:
		return errors.ConfigInvalid("dataset path must end in .csv or .xlsx")
	}
	if config.Model.Path == "" {
		return errors.ConfigInvalid("model path is required")
	}
	if config.Charts.RenderLimit < 1 {
		return errors.ConfigInvalid("chart render limit must be at least 1")
	}
	if config.Charts.RatePerSec <= 0 {
		return errors.ConfigInvalid("chart rate must be positive")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Duration parsing helper (for future use)
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
