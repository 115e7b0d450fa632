package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile and environment.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Shell    ShellConfig    `json:"shell"`
	Fallback FallbackConfig `json:"fallback"`
	UI       UIConfig       `json:"ui"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  MetricsConfig  `json:"metrics"`
}

type ShellConfig struct {
	User     string `json:"user"`     // Default: "user"
	Hostname string `json:"hostname"` // Default: "linux"

	// Session limits
	HistoryLimit    int `json:"history_limit"`    // Default: 500
	ScrollbackLimit int `json:"scrollback_limit"` // Default: 1000

	// Host import (empty ImportDir disables it)
	ImportDir         string `json:"import_dir"`
	ImportMaxFileSize int64  `json:"import_max_file_size"` // Default: 1024 * 1024 (1MB)
	ImportMaxFiles    int    `json:"import_max_files"`     // Default: 2000

	// Markdown rendering for glow
	RenderWidth int `json:"render_width"` // Default: 80
}

type FallbackConfig struct {
	Enabled bool   `json:"enabled"` // Default: true
	Model   string `json:"model"`   // Default: "gemini-2.5-flash-lite"

	// APIKey is only read from the environment (GEMINI_API_KEY).
	APIKey string `json:"-"`

	TimeoutSeconds    int   `json:"timeout_seconds"`     // Default: 30
	MaxOutputTokens   int32 `json:"max_output_tokens"`   // Default: 1024
	RequestsPerMinute int   `json:"requests_per_minute"` // Default: 20

	// HTTP retries
	MaxRetries     int `json:"max_retries"`       // Default: 3
	RetryWaitMinMs int `json:"retry_wait_min_ms"` // Default: 500
	RetryWaitMaxMs int `json:"retry_wait_max_ms"` // Default: 5000
}

type UIConfig struct {
	TickIntervalMs int    `json:"tick_interval_ms"` // Default: 300
	ColorUser      string `json:"color_user"`       // Default: "42"
	ColorPath      string `json:"color_path"`       // Default: "33"
	ColorText      string `json:"color_text"`       // Default: "252"
	ColorError     string `json:"color_error"`      // Default: "196"
}

type LoggingConfig struct {
	Level      string `json:"level"`        // Default: "info"
	File       string `json:"file"`         // Default: ~/.config/vsh/vsh.log, "-" disables logging
	MaxSizeMB  int    `json:"max_size_mb"`  // Default: 10
	MaxBackups int    `json:"max_backups"`  // Default: 3
	MaxAgeDays int    `json:"max_age_days"` // Default: 14
}

type MetricsConfig struct {
	// Addr serves /metrics when non-empty (e.g. "127.0.0.1:9464").
	Addr string `json:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			User:              "user",
			Hostname:          "linux",
			HistoryLimit:      500,
			ScrollbackLimit:   1000,
			ImportMaxFileSize: 1024 * 1024,
			ImportMaxFiles:    2000,
			RenderWidth:       80,
		},
		Fallback: FallbackConfig{
			Enabled:           true,
			Model:             "gemini-2.5-flash-lite",
			TimeoutSeconds:    30,
			MaxOutputTokens:   1024,
			RequestsPerMinute: 20,
			MaxRetries:        3,
			RetryWaitMinMs:    500,
			RetryWaitMaxMs:    5000,
		},
		UI: UIConfig{
			TickIntervalMs: 300,
			ColorUser:      "42",
			ColorPath:      "33",
			ColorText:      "252",
			ColorError:     "196",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}
