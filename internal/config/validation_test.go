package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllDefaults_Pass(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_Shell(t *testing.T) {
	t.Run("Empty User Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.User = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "shell.user")
	})

	t.Run("Narrow Render Width Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Shell.RenderWidth = 5
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "render_width")
	})
}

func TestValidate_Fallback(t *testing.T) {
	t.Run("Empty Model Fails When Enabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Fallback.Model = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "fallback.model")
	})

	t.Run("Empty Model Passes When Disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Fallback.Enabled = false
		cfg.Fallback.Model = ""
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Retry Window Inverted Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Fallback.RetryWaitMinMs = 1000
		cfg.Fallback.RetryWaitMaxMs = 10
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "retry_wait_max_ms")
	})
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.TickIntervalMs = 0
	cfg.Logging.MaxSizeMB = 0

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ui.tick_interval_ms")
	assert.Contains(t, err.Error(), "logging.max_size_mb")
}
