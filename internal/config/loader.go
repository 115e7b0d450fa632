package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "vsh"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// LogFile is the default log file name inside ConfigDir
	LogFile = "vsh.log"
	// LogDisabled as logging.file turns logging off
	LogDisabled = "-"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// envOverrides lists the environment variables that take precedence over the dotfile.
// Unset variables leave the corresponding field untouched.
type envOverrides struct {
	APIKey      string `envconfig:"GEMINI_API_KEY"`
	Model       string `envconfig:"VSH_MODEL"`
	LogLevel    string `envconfig:"VSH_LOG_LEVEL"`
	LogFile     string `envconfig:"VSH_LOG_FILE"`
	MetricsAddr string `envconfig:"VSH_METRICS_ADDR"`
	ImportDir   string `envconfig:"VSH_IMPORT_DIR"`
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads configuration from ~/.config/vsh/config.json, merges it with defaults
// and applies environment overrides. Dotfile values override defaults, environment
// values override both.
// Returns default config if dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
//
// NOTE: This implementation unmarshals JSON keys directly over the default configuration.
// This allows explicit zero values (e.g., 0, false, "") in the config file to override defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	homeDir, err := l.fs.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)

		data, err := l.fs.ReadFile(configPath)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err // Return error for malformed JSON
			}
		case os.IsNotExist(err):
			// Use defaults if file doesn't exist
		default:
			return nil, err // Return error for permission issues
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Logging.File == "" && homeDir != "" {
		cfg.Logging.File = filepath.Join(homeDir, ".config", ConfigDir, LogFile)
	}

	// Validate the merged configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.Fallback.APIKey = env.APIKey
	if env.Model != "" {
		cfg.Fallback.Model = env.Model
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Logging.File = env.LogFile
	}
	if env.MetricsAddr != "" {
		cfg.Metrics.Addr = env.MetricsAddr
	}
	if env.ImportDir != "" {
		cfg.Shell.ImportDir = env.ImportDir
	}
	return nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
