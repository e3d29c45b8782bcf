// Package config provides configuration management and settings for ccrefactor
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fumiya-kume/ccrefactor/pkg/compare"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
	"github.com/fumiya-kume/ccrefactor/pkg/refactor"
)

// Log level constants
const (
	logLevelDebug = "debug"
)

// ValidationLevel represents the level of configuration validation
type ValidationLevel int

const (
	ValidationLevelBasic ValidationLevel = iota
	ValidationLevelStrict
	ValidationLevelComplete
)

// ConfigValidator validates configuration
type ConfigValidator struct {
	level ValidationLevel
}

// ConfigValidationResult contains validation results
type ConfigValidationResult struct {
	Errors   []error
	Warnings []string
}

// HasErrors returns true if there are validation errors
func (cvr *ConfigValidationResult) HasErrors() bool {
	return len(cvr.Errors) > 0
}

// NewConfigValidator creates a new config validator
func NewConfigValidator(level ValidationLevel) *ConfigValidator {
	return &ConfigValidator{level: level}
}

// ValidateConfig validates a configuration
func (cv *ConfigValidator) ValidateConfig(config *Config) *ConfigValidationResult {
	result := &ConfigValidationResult{
		Errors:   []error{},
		Warnings: []string{},
	}

	if config == nil {
		result.Errors = append(result.Errors, fmt.Errorf("config cannot be nil"))
		return result
	}

	cv.validateVersion(config, result)
	cv.validateCompareConfig(config, result)
	cv.validateRefactorConfig(config, result)
	cv.validateGitHubConfig(config, result)
	cv.validateUIConfig(config, result)
	cv.validateLoggingConfig(config, result)
	cv.validateStrictLevel(config, result)
	cv.validateCompleteLevel(config, result)

	return result
}

// validateVersion validates the configuration version
func (cv *ConfigValidator) validateVersion(config *Config, result *ConfigValidationResult) {
	if config.Version == "" {
		result.Errors = append(result.Errors, fmt.Errorf("version cannot be empty"))
		return
	}

	validVersions := map[string]bool{"1.0": true}
	if !validVersions[config.Version] {
		result.Errors = append(result.Errors, fmt.Errorf("invalid version format: %s", config.Version))
	}
}

func (cv *ConfigValidator) validateCompareConfig(config *Config, result *ConfigValidationResult) {
	if _, err := compare.ParseDepth(config.Compare.Depth); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("compare.depth: %w", err))
	}
	if config.Compare.Context < 0 {
		result.Errors = append(result.Errors, fmt.Errorf("compare.context cannot be negative"))
	}
}

// validateRefactorConfig checks rule names against the registry
func (cv *ConfigValidator) validateRefactorConfig(config *Config, result *ConfigValidationResult) {
	for _, name := range config.Refactor.Rules {
		if _, err := refactor.LookupRule(name); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("refactor.rules: unknown rule %q", name))
		}
	}
	for _, ext := range config.Refactor.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Errors = append(result.Errors, fmt.Errorf("refactor.extensions: %q must start with a dot", ext))
		}
	}
	if config.Refactor.Workers < 0 {
		result.Errors = append(result.Errors, fmt.Errorf("refactor.workers cannot be negative"))
	}
}

// validateGitHubConfig validates GitHub-related configuration
func (cv *ConfigValidator) validateGitHubConfig(config *Config, result *ConfigValidationResult) {
	if config.GitHub.Host == "" || strings.ContainsAny(config.GitHub.Host, "/ ") {
		result.Errors = append(result.Errors, fmt.Errorf("invalid GitHub host: %q", config.GitHub.Host))
	}
	if config.GitHub.RequestsPerHour < 1 {
		result.Errors = append(result.Errors, fmt.Errorf("github.requests_per_hour must be at least 1"))
	}
	if config.GitHub.Timeout < time.Second {
		result.Errors = append(result.Errors, fmt.Errorf("github.timeout must be at least 1 second"))
	}
}

// validateUIConfig validates UI configuration
func (cv *ConfigValidator) validateUIConfig(config *Config, result *ConfigValidationResult) {
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[config.UI.Theme] {
		result.Errors = append(result.Errors, fmt.Errorf("invalid theme: %s", config.UI.Theme))
	}
}

func (cv *ConfigValidator) validateLoggingConfig(config *Config, result *ConfigValidationResult) {
	validLevels := map[string]bool{
		logLevelDebug: true,
		"info":        true,
		"warn":        true,
		"error":       true,
	}
	if !validLevels[config.Logging.Level] {
		result.Errors = append(result.Errors, fmt.Errorf("logging.level must be one of: debug, info, warn, error"))
	}
}

// validateStrictLevel performs strict-level validation
func (cv *ConfigValidator) validateStrictLevel(config *Config, result *ConfigValidationResult) {
	if cv.level < ValidationLevelStrict {
		return
	}

	if !config.Refactor.PreserveLogic {
		result.Warnings = append(result.Warnings, "refactor.preserve_logic is off: rewrites are not guarded")
	}
	if !config.Refactor.CreateBackup {
		result.Warnings = append(result.Warnings, "refactor.create_backup is off: no snapshot is taken before writing")
	}
}

// validateCompleteLevel performs complete-level validation
func (cv *ConfigValidator) validateCompleteLevel(config *Config, result *ConfigValidationResult) {
	if cv.level < ValidationLevelComplete {
		return
	}

	if !config.Refactor.PreserveLogic {
		return
	}
	for _, ext := range config.Refactor.Extensions {
		if !refactor.UsesBraces("file" + ext) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("brace balance is not checked for %s files", ext))
		}
	}
}

// Config represents the application configuration
type Config struct {
	Version string `yaml:"version"`

	Compare  CompareConfig  `yaml:"compare"`
	Refactor RefactorConfig `yaml:"refactor"`
	GitHub   GitHubConfig   `yaml:"github"`
	Watch    WatchConfig    `yaml:"watch"`
	UI       UIConfig       `yaml:"ui"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CompareConfig holds comparison settings
type CompareConfig struct {
	Depth string `yaml:"depth"`
	// Context is the number of unchanged lines around each hunk of a unified patch
	Context int `yaml:"context"`
}

// RefactorConfig holds the defaults of the refactor command
type RefactorConfig struct {
	Rules         []string          `yaml:"rules"`
	PreserveLogic bool              `yaml:"preserve_logic"`
	CreateBackup  bool              `yaml:"create_backup"`
	Extensions    []string          `yaml:"extensions"`
	Workers       int               `yaml:"workers"`
	Patterns      refactor.Patterns `yaml:"patterns"`
}

// GitHubConfig holds GitHub integration settings
type GitHubConfig struct {
	Host            string        `yaml:"host"`
	RequestsPerHour int           `yaml:"requests_per_hour"`
	Timeout         time.Duration `yaml:"timeout"`
}

// WatchConfig holds settings of the watch command
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// UIConfig holds user interface settings
type UIConfig struct {
	Theme   string      `yaml:"theme"`
	NoColor bool        `yaml:"no_color"`
	Sound   SoundConfig `yaml:"sound"`
}

// SoundConfig holds sound notification settings
type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",

		Compare: CompareConfig{
			Depth:   "detailed",
			Context: 3,
		},

		Refactor: RefactorConfig{
			Rules:         refactor.RuleNames(),
			PreserveLogic: true,
			CreateBackup:  true,
			Extensions:    append([]string(nil), refactor.DefaultExtensions...),
			Workers:       1,
		},

		GitHub: GitHubConfig{
			Host:            "github.com",
			RequestsPerHour: 5000,
			Timeout:         30 * time.Second,
		},

		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},

		UI: UIConfig{
			Theme: "dark",
		},

		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Validate validates the configuration at the basic level
func (c *Config) Validate() error {
	result := NewConfigValidator(ValidationLevelBasic).ValidateConfig(c)
	if result.HasErrors() {
		return result.Errors[0]
	}
	return nil
}

// ApplyEnvironmentOverrides applies environment variable overrides to the configuration
func (c *Config) ApplyEnvironmentOverrides() {
	if level := os.Getenv("CCREFACTOR_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if file := os.Getenv("CCREFACTOR_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if depth := os.Getenv("CCREFACTOR_DEPTH"); depth != "" {
		c.Compare.Depth = strings.ToLower(depth)
	}
	if host := os.Getenv("CCREFACTOR_GITHUB_HOST"); host != "" {
		c.GitHub.Host = host
	}
	if theme := os.Getenv("CCREFACTOR_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.NoColor = true
	}

	// Debug mode override
	if os.Getenv("CCREFACTOR_DEBUG") == "true" {
		c.Logging.Level = logLevelDebug
	}
}

// Depth returns the configured comparison depth
func (c *Config) Depth() compare.Depth {
	depth, err := compare.ParseDepth(c.Compare.Depth)
	if err != nil {
		return compare.Detailed
	}
	return depth
}

// ToLoggerConfig converts the logging configuration to logger.Config
func (c *Config) ToLoggerConfig() logger.Config {
	return logger.Config{
		Level:     logger.ParseLevel(c.Logging.Level),
		LogFile:   c.Logging.File,
		Timestamp: c.Logging.Level == logLevelDebug,
		Prefix:    "ccrefactor",
	}
}
