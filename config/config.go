package config

// Config holds all compressor configuration options
type Config struct {
	// Required fields
	InputDir string `yaml:"input_dir"`

	// Execution settings
	Workers int `yaml:"workers"` // 0 = auto-detect
	CRF     int `yaml:"crf"`     // -1 = pick per file from resolution

	// Tool locations
	FFmpegBin  string `yaml:"ffmpeg_bin"`
	FFprobeBin string `yaml:"ffprobe_bin"`

	// Observability
	LogLevel    string `yaml:"log_level"`    // "debug", "info", "warn", "error"
	LogFormat   string `yaml:"log_format"`   // "console", "json"
	MetricsPort int    `yaml:"metrics_port"` // 0 = metrics endpoint disabled

	// Behavioral flags
	Verbose bool `yaml:"verbose"` // Show detailed logs
	DryRun  bool `yaml:"dry_run"` // Show plan without encoding
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		// Required - must be provided by user
		InputDir: "",

		// Execution settings
		Workers: 1,  // Sequential by default, transcodes are heavy
		CRF:     -1, // Per-file from resolution and encoder

		// Tool locations
		FFmpegBin:  "ffmpeg",
		FFprobeBin: "ffprobe",

		// Observability
		LogLevel:    "info",
		LogFormat:   "console",
		MetricsPort: 0,

		// Behavioral defaults
		Verbose: false,
		DryRun:  false,
	}
}

// Copy creates a copy of the config
func (c *Config) Copy() *Config {
	copy := *c
	return &copy
}

// LogLevelValues returns valid log level values
func LogLevelValues() []string {
	return []string{"debug", "info", "warn", "error"}
}

// IsValidLogLevel checks if level is valid
func IsValidLogLevel(level string) bool {
	for _, valid := range LogLevelValues() {
		if level == valid {
			return true
		}
	}
	return false
}

// LogFormatValues returns valid log format values
func LogFormatValues() []string {
	return []string{"console", "json"}
}

// IsValidLogFormat checks if format is valid
func IsValidLogFormat(format string) bool {
	for _, valid := range LogFormatValues() {
		if format == valid {
			return true
		}
	}
	return false
}
