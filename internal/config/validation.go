package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Shell validation
	if c.Shell.User == "" {
		errs = append(errs, "shell.user must not be empty")
	}
	if c.Shell.Hostname == "" {
		errs = append(errs, "shell.hostname must not be empty")
	}
	if c.Shell.HistoryLimit < 1 {
		errs = append(errs, "shell.history_limit must be >= 1")
	}
	if c.Shell.ScrollbackLimit < 1 {
		errs = append(errs, "shell.scrollback_limit must be >= 1")
	}
	if c.Shell.ImportMaxFileSize < 1 {
		errs = append(errs, "shell.import_max_file_size must be >= 1")
	}
	if c.Shell.ImportMaxFiles < 1 {
		errs = append(errs, "shell.import_max_files must be >= 1")
	}
	if c.Shell.RenderWidth < 20 {
		errs = append(errs, "shell.render_width must be >= 20")
	}

	// Fallback validation
	if c.Fallback.Enabled && c.Fallback.Model == "" {
		errs = append(errs, "fallback.model must not be empty when fallback is enabled")
	}
	if c.Fallback.TimeoutSeconds < 1 {
		errs = append(errs, "fallback.timeout_seconds must be >= 1")
	}
	if c.Fallback.MaxOutputTokens < 1 {
		errs = append(errs, "fallback.max_output_tokens must be >= 1")
	}
	if c.Fallback.RequestsPerMinute < 1 {
		errs = append(errs, "fallback.requests_per_minute must be >= 1")
	}
	if c.Fallback.MaxRetries < 0 {
		errs = append(errs, "fallback.max_retries must be >= 0")
	}
	if c.Fallback.RetryWaitMinMs < 1 {
		errs = append(errs, "fallback.retry_wait_min_ms must be >= 1")
	}
	if c.Fallback.RetryWaitMaxMs < c.Fallback.RetryWaitMinMs {
		errs = append(errs, "fallback.retry_wait_max_ms must be >= fallback.retry_wait_min_ms")
	}

	// UI validation
	if c.UI.TickIntervalMs < 1 {
		errs = append(errs, "ui.tick_interval_ms must be >= 1")
	}

	// Logging validation
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Sprintf("logging.level %q is not a valid level", c.Logging.Level))
	}
	if c.Logging.MaxSizeMB < 1 {
		errs = append(errs, "logging.max_size_mb must be >= 1")
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, "logging.max_backups must be >= 0")
	}
	if c.Logging.MaxAgeDays < 0 {
		errs = append(errs, "logging.max_age_days must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
