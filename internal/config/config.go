package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"chronostat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Permutation PermutationConfig
	Analysis    AnalysisConfig
	Server      ServerConfig
	Data        DataConfig
	LogLevel    string
}

// PermutationConfig holds permutation engine settings
type PermutationConfig struct {
	Trials     int
	Seed       int64
	Workers    int
	MaxTrials  int
	MaxWorkers int
	// Run namespaces the random streams so runs sharing a seed can differ
	Run string
}

// AnalysisConfig holds the default comparison plan
type AnalysisConfig struct {
	Conditions  []string
	Concurrency int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// DataConfig holds data file settings
type DataConfig struct {
	File  string
	Sheet string
}

// DefaultConditions are the intervention conditions of the experiment
var DefaultConditions = []string{"standard", "advanced", "delayed"}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	maxWorkers := getEnvIntOrDefault("PERMUTATION_MAX_WORKERS", 64)
	config := &Config{
		Permutation: PermutationConfig{
			Trials:     getEnvIntOrDefault("PERMUTATION_TRIALS", 10000),
			Seed:       getEnvInt64OrDefault("PERMUTATION_SEED", 42),
			Workers:    getEnvIntOrDefault("PERMUTATION_WORKERS", min(runtime.NumCPU(), maxWorkers)),
			MaxTrials:  getEnvIntOrDefault("PERMUTATION_MAX_TRIALS", 1_000_000),
			MaxWorkers: maxWorkers,
			Run:        getEnvOrDefault("PERMUTATION_RUN", ""),
		},
		Analysis: AnalysisConfig{
			Conditions:  getEnvListOrDefault("CONDITIONS", DefaultConditions),
			Concurrency: getEnvIntOrDefault("ANALYSIS_CONCURRENCY", 4),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			GinMode:         getEnvOrDefault("GIN_MODE", "release"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxBodyBytes:    getEnvInt64OrDefault("MAX_BODY_BYTES", 8<<20),
		},
		Data: DataConfig{
			File:  getEnvOrDefault("DATA_FILE", ""),
			Sheet: getEnvOrDefault("DATA_SHEET", ""),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Permutation.Trials <= 0 {
		return errors.ConfigInvalid("PERMUTATION_TRIALS must be positive")
	}
	if config.Permutation.Workers <= 0 {
		return errors.ConfigInvalid("PERMUTATION_WORKERS must be positive")
	}
	if config.Permutation.MaxTrials < config.Permutation.Trials {
		return errors.ConfigInvalid("PERMUTATION_MAX_TRIALS must be at least PERMUTATION_TRIALS")
	}
	if config.Permutation.MaxWorkers < config.Permutation.Workers {
		return errors.ConfigInvalid("PERMUTATION_MAX_WORKERS must be at least PERMUTATION_WORKERS")
	}
	if config.Analysis.Concurrency <= 0 {
		return errors.ConfigInvalid("ANALYSIS_CONCURRENCY must be positive")
	}
	if len(config.Analysis.Conditions) < 2 {
		return errors.ConfigInvalid("CONDITIONS needs at least two entries")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
