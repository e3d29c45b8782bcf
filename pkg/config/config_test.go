package config

import (
	"strings"
	"testing"
	"time"

	"github.com/fumiya-kume/ccrefactor/pkg/compare"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
	"github.com/fumiya-kume/ccrefactor/pkg/refactor"
)

// Test constants
const (
	invalidValue = "invalid"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", config.Version)
	}

	if config.Compare.Depth != "detailed" {
		t.Errorf("Expected detailed depth, got %s", config.Compare.Depth)
	}

	if len(config.Refactor.Rules) != len(refactor.DefaultRules) {
		t.Errorf("Expected all %d rules, got %v", len(refactor.DefaultRules), config.Refactor.Rules)
	}

	if !config.Refactor.PreserveLogic || !config.Refactor.CreateBackup {
		t.Error("Expected guarded, backed-up refactoring by default")
	}

	if config.GitHub.Timeout != 30*time.Second {
		t.Errorf("Expected 30 second timeout, got %v", config.GitHub.Timeout)
	}

	if config.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected 500ms debounce, got %v", config.Watch.Debounce)
	}
}

func TestDefaultConfigDoesNotShareRuleSlices(t *testing.T) {
	config := DefaultConfig()
	config.Refactor.Rules[0] = "changed"
	config.Refactor.Extensions[0] = ".changed"

	if refactor.DefaultRules[0] == "changed" || refactor.DefaultExtensions[0] == ".changed" {
		t.Error("DefaultConfig must copy package defaults")
	}
}

func TestConfigValidation(t *testing.T) {
	// Test valid config
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("Default config should be valid, got error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty version", func(c *Config) { c.Version = "" }},
		{"unknown version", func(c *Config) { c.Version = "9.9" }},
		{"unknown depth", func(c *Config) { c.Compare.Depth = "deep" }},
		{"negative context", func(c *Config) { c.Compare.Context = -1 }},
		{"unknown rule", func(c *Config) { c.Refactor.Rules = []string{"inline-everything"} }},
		{"extension without dot", func(c *Config) { c.Refactor.Extensions = []string{"js"} }},
		{"negative workers", func(c *Config) { c.Refactor.Workers = -2 }},
		{"host with path", func(c *Config) { c.GitHub.Host = "github.com/org" }},
		{"zero rate", func(c *Config) { c.GitHub.RequestsPerHour = 0 }},
		{"short timeout", func(c *Config) { c.GitHub.Timeout = time.Millisecond }},
		{"invalid theme", func(c *Config) { c.UI.Theme = invalidValue }},
		{"invalid log level", func(c *Config) { c.Logging.Level = invalidValue }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("CCREFACTOR_LOG_LEVEL", "INFO")
	t.Setenv("CCREFACTOR_DEPTH", "Comprehensive")
	t.Setenv("CCREFACTOR_GITHUB_HOST", "github.example.com")
	t.Setenv("CCREFACTOR_THEME", "light")
	t.Setenv("NO_COLOR", "")

	config := DefaultConfig()
	config.ApplyEnvironmentOverrides()

	if config.Logging.Level != "info" {
		t.Errorf("Expected info log level, got %s", config.Logging.Level)
	}
	if config.Depth() != compare.Comprehensive {
		t.Errorf("Expected comprehensive depth, got %s", config.Depth())
	}
	if config.GitHub.Host != "github.example.com" {
		t.Errorf("Expected enterprise host, got %s", config.GitHub.Host)
	}
	if config.UI.Theme != "light" {
		t.Errorf("Expected light theme, got %s", config.UI.Theme)
	}
	if !config.UI.NoColor {
		t.Error("Expected NO_COLOR to disable color even when empty")
	}
}

func TestDebugOverride(t *testing.T) {
	t.Setenv("CCREFACTOR_LOG_LEVEL", "error")
	t.Setenv("CCREFACTOR_DEBUG", "true")

	config := DefaultConfig()
	config.ApplyEnvironmentOverrides()

	if config.Logging.Level != "debug" {
		t.Errorf("Expected debug to win over the log level, got %s", config.Logging.Level)
	}
}

func TestDepthFallsBackToDetailed(t *testing.T) {
	config := DefaultConfig()
	config.Compare.Depth = "bogus"
	if config.Depth() != compare.Detailed {
		t.Errorf("Expected detailed fallback, got %s", config.Depth())
	}
}

func TestToLoggerConfig(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "debug"
	config.Logging.File = "/tmp/ccrefactor.log"

	loggerConfig := config.ToLoggerConfig()

	if loggerConfig.Level != logger.LevelDebug {
		t.Errorf("Expected debug level, got %v", loggerConfig.Level)
	}
	if loggerConfig.LogFile != "/tmp/ccrefactor.log" {
		t.Errorf("Expected log file to be passed through, got %s", loggerConfig.LogFile)
	}
	if !loggerConfig.Timestamp {
		t.Error("Expected timestamps in debug mode")
	}
	if loggerConfig.Prefix != "ccrefactor" {
		t.Errorf("Expected ccrefactor prefix, got %s", loggerConfig.Prefix)
	}

	config.Logging.Level = "warn"
	if config.ToLoggerConfig().Level != logger.LevelWarn {
		t.Error("Expected warn level")
	}
}

func TestConfigValidationLevels(t *testing.T) {
	config := DefaultConfig()
	config.Refactor.PreserveLogic = false

	basic := NewConfigValidator(ValidationLevelBasic).ValidateConfig(config)
	if basic.HasErrors() || len(basic.Warnings) != 0 {
		t.Errorf("Expected a clean basic validation, got %v / %v", basic.Errors, basic.Warnings)
	}

	strict := NewConfigValidator(ValidationLevelStrict).ValidateConfig(config)
	if len(strict.Warnings) != 1 || !strings.Contains(strict.Warnings[0], "preserve_logic") {
		t.Errorf("Expected one preserve_logic warning, got %v", strict.Warnings)
	}

	config = DefaultConfig()
	config.Refactor.Extensions = []string{".ts", ".py"}
	complete := NewConfigValidator(ValidationLevelComplete).ValidateConfig(config)
	if len(complete.Warnings) != 1 || !strings.Contains(complete.Warnings[0], ".py") {
		t.Errorf("Expected one brace warning for .py, got %v", complete.Warnings)
	}
}

func TestConfigValidationErrors(t *testing.T) {
	result := NewConfigValidator(ValidationLevelBasic).ValidateConfig(nil)
	if !result.HasErrors() {
		t.Error("Expected error for nil config")
	}

	config := DefaultConfig()
	config.UI.Theme = invalidValue
	config.Logging.Level = invalidValue
	result = NewConfigValidator(ValidationLevelBasic).ValidateConfig(config)
	if len(result.Errors) != 2 {
		t.Errorf("Expected every error to be collected, got %v", result.Errors)
	}
}
