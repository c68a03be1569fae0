package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Required fields
	if c.InputDir == "" {
		errors = append(errors, "input directory is required")
	} else {
		info, err := os.Stat(c.InputDir)
		if os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("input directory does not exist: %s", c.InputDir))
		} else if err == nil && !info.IsDir() {
			errors = append(errors, fmt.Sprintf("input path is not a directory: %s", c.InputDir))
		}
	}

	// Validate workers (0 never survives LoadConfig, but guard direct use)
	if c.Workers < 1 {
		errors = append(errors, "workers must be at least 1")
	}

	// Validate CRF (-1 means pick per file)
	if c.CRF < -1 || c.CRF > 51 {
		errors = append(errors, "crf must be between 0 and 51, or -1 for automatic")
	}

	// Tool locations
	if c.FFmpegBin == "" {
		errors = append(errors, "ffmpeg binary path is required")
	}
	if c.FFprobeBin == "" {
		errors = append(errors, "ffprobe binary path is required")
	}

	// Observability
	if !IsValidLogLevel(c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s', must be one of: %s",
			c.LogLevel, strings.Join(LogLevelValues(), ", ")))
	}
	if !IsValidLogFormat(c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s', must be one of: %s",
			c.LogFormat, strings.Join(LogFormatValues(), ", ")))
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errors = append(errors, "metrics port must be between 0 and 65535 (0 = disabled)")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
