package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// MergeFromEnv overrides config values from environment variables.
// A .env file in the working directory is loaded first if present.
func (c *Config) MergeFromEnv() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	c.InputDir = getEnv("INPUT_DIR", c.InputDir)
	c.Workers = getEnvInt("WORKERS", c.Workers)
	c.CRF = getEnvInt("CRF", c.CRF)
	c.FFmpegBin = getEnv("FFMPEG_BIN", c.FFmpegBin)
	c.FFprobeBin = getEnv("FFPROBE_BIN", c.FFprobeBin)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.MetricsPort = getEnvInt("METRICS_PORT", c.MetricsPort)
	c.Verbose = getEnvBool("VERBOSE", c.Verbose)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
