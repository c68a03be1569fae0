package config

import (
	"flag"
	"fmt"
	"os"
)

// MergeFromFlags parses command-line flags and overrides config values
func (c *Config) MergeFromFlags() error {
	// Define flags
	fs := flag.NewFlagSet("compressor", flag.ContinueOnError)
	fs.Usage = printUsage

	// Required fields
	input := fs.String("input", "", "Directory to scan for videos (required)")

	// Config file override (handled by LoadConfig before this function is called)
	_ = fs.String("config", "", "Path to config file (default: search standard locations)")

	// Execution settings
	workers := fs.Int("workers", -1, "Number of parallel transcodes (0 = auto-detect, default: from config)")
	crf := fs.Int("crf", -2, "Force this CRF for every file (default: pick per file from resolution)")

	// Tool locations
	ffmpegBin := fs.String("ffmpeg", "", "Path to the ffmpeg binary (default: from config)")
	ffprobeBin := fs.String("ffprobe", "", "Path to the ffprobe binary (default: from config)")

	// Observability
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (default: from config)")
	logFormat := fs.String("log-format", "", "Log format: console, json (default: from config)")
	metricsPort := fs.Int("metrics-port", -1, "Port for the Prometheus metrics endpoint (0 = disabled, default: from config)")

	// Behavioral flags
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	dryRun := fs.Bool("dry-run", false, "Show the transcode plan without encoding")

	// Parse flags
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	// Override with flag values (only if explicitly set)
	if *input != "" {
		c.InputDir = *input
	}

	// Execution settings (sentinel values mean not set)
	if *workers >= 0 {
		c.Workers = *workers
	}
	if *crf >= -1 {
		c.CRF = *crf
	}

	// Tool locations
	if *ffmpegBin != "" {
		c.FFmpegBin = *ffmpegBin
	}
	if *ffprobeBin != "" {
		c.FFprobeBin = *ffprobeBin
	}

	// Observability
	if *logLevel != "" {
		c.LogLevel = *logLevel
	}
	if *logFormat != "" {
		c.LogFormat = *logFormat
	}
	if *metricsPort >= 0 {
		c.MetricsPort = *metricsPort
	}

	// Behavioral flags
	if *verbose {
		c.Verbose = true
	}
	if *dryRun {
		c.DryRun = true
	}

	return nil
}

// printUsage prints help text
func printUsage() {
	fmt.Fprintf(os.Stderr, `compressor - Batch H.265 transcoding for a directory of videos

USAGE:
  compressor -input DIR [OPTIONS]

REQUIRED FLAGS:
  -input string
        Directory to scan for videos (required)

CONFIGURATION:
  -config string
        Path to config file (default: search ./compressor.yaml, ~/.compressor/config.yaml, /etc/compressor/config.yaml)

EXECUTION SETTINGS:
  -workers int
        Number of parallel transcodes (0 = auto-detect CPU count) (default: 1)
  -crf int
        Force this CRF (0-51) for every file (default: pick per file from resolution)

TOOL LOCATIONS:
  -ffmpeg string
        Path to the ffmpeg binary (default: ffmpeg)
  -ffprobe string
        Path to the ffprobe binary (default: ffprobe)

OBSERVABILITY:
  -log-level string
        Log level: debug, info, warn, error (default: info)
  -log-format string
        Log format: console, json (default: console)
  -metrics-port int
        Port for the Prometheus metrics endpoint (0 = disabled) (default: 0)

BEHAVIORAL FLAGS:
  --verbose
        Enable verbose logging
  --dry-run
        Show the transcode plan without encoding

EXAMPLES:
  # Transcode every video under ~/videos, one at a time
  compressor -input ~/videos

  # Four parallel transcodes with a fixed quality
  compressor -input ~/videos -workers 4 -crf 24

  # Preview what would be transcoded
  compressor -input ~/videos --dry-run

  # Expose Prometheus metrics while running
  compressor -input ~/videos -metrics-port 9090

CONFIGURATION FILES:
  Config files are searched in order:
    1. ./compressor.yaml
    2. ~/.compressor/config.yaml
    3. /etc/compressor/config.yaml

  Priority: CLI flags > Environment > Config file > Defaults

OUTPUT:
  Results are written next to the sources in an output_wm/ directory,
  named <original>_h265.mp4. Files whose output already exists are
  skipped, so interrupted runs can be resumed by running again.

`)
}

// PrintConfig prints the effective configuration
func (c *Config) PrintConfig() {
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("                 Effective Configuration                  ")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("Input Dir:      %s\n", c.InputDir)
	fmt.Printf("Workers:        %d\n", c.Workers)
	if c.CRF >= 0 {
		fmt.Printf("CRF:            %d (forced)\n", c.CRF)
	} else {
		fmt.Printf("CRF:            per file from resolution\n")
	}
	fmt.Printf("FFmpeg:         %s\n", c.FFmpegBin)
	fmt.Printf("FFprobe:        %s\n", c.FFprobeBin)

	fmt.Println("\nObservability:")
	fmt.Printf("  Log Level:    %s\n", c.LogLevel)
	fmt.Printf("  Log Format:   %s\n", c.LogFormat)
	if c.MetricsPort > 0 {
		fmt.Printf("  Metrics Port: %d\n", c.MetricsPort)
	} else {
		fmt.Printf("  Metrics:      disabled\n")
	}

	fmt.Println("\nBehavioral Flags:")
	fmt.Printf("  Verbose:      %v\n", c.Verbose)
	fmt.Printf("  Dry Run:      %v\n", c.DryRun)
	fmt.Println("═══════════════════════════════════════════════════════════")
}
