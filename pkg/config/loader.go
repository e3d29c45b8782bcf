package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fumiya-kume/ccrefactor/pkg/errors"
)

// Loader handles configuration loading and saving
type Loader struct {
	configPath string
}

// NewLoader creates a new configuration loader. An empty path searches GetConfigPaths.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// LoadConfig loads configuration from file or returns default config
func (l *Loader) LoadConfig() (*Config, error) {
	// Start with default configuration
	config := DefaultConfig()

	// If no specific config path provided, search for config files
	if l.configPath == "" {
		configPath, err := l.findConfigFile()
		if err != nil {
			// No config file found, use defaults with environment overrides
			config.ApplyEnvironmentOverrides()
			return config, nil
		}
		l.configPath = configPath
	}

	// Check if config file exists
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		config.ApplyEnvironmentOverrides()
		return config, nil
	}

	// #nosec G304 - config path is chosen by the user
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, errors.FileSystemError("read config", l.configPath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.NewError(errors.ErrorTypeConfiguration).
			WithMessagef("failed to parse config file %s", l.configPath).
			WithCause(err).
			WithContext("path", l.configPath).
			WithSuggestion("Check the YAML syntax of the configuration file").
			Build()
	}

	config.ApplyEnvironmentOverrides()

	if err := config.Validate(); err != nil {
		return nil, errors.NewError(errors.ErrorTypeConfiguration).
			WithMessagef("invalid configuration in %s", l.configPath).
			WithCause(err).
			WithSeverity(errors.SeverityHigh).
			WithContext("path", l.configPath).
			WithSuggestion("Run 'ccrefactor config validate' to verify settings").
			Build()
	}

	return config, nil
}

// SaveConfig saves the configuration to file
func (l *Loader) SaveConfig(config *Config) error {
	if l.configPath == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		l.configPath = path
	}

	// Ensure directory exists
	configDir := filepath.Dir(l.configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", l.configPath, err)
	}

	return nil
}

// GetConfigPath returns the current config file path
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

// findConfigFile searches for a configuration file in standard locations
func (l *Loader) findConfigFile() (string, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found")
}

// GetConfigPaths returns the list of configuration file paths to check, in order
func GetConfigPaths() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Use current directory as fallback if home directory cannot be determined
		homeDir = "."
	}

	paths := []string{
		".ccrefactor.yaml",
		".ccrefactor.yml",
		filepath.Join(homeDir, ".ccrefactor.yaml"),
		filepath.Join(homeDir, ".config", "ccrefactor", "config.yaml"),
	}

	if envPath := os.Getenv("CCREFACTOR_CONFIG"); envPath != "" {
		paths = append([]string{envPath}, paths...)
	}

	return paths
}

// DefaultConfigPath is where `config init` writes when no path is given
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "ccrefactor", "config.yaml"), nil
}

// CreateDefaultConfig writes the default configuration to path
func CreateDefaultConfig(path string) error {
	return NewLoader(path).SaveConfig(DefaultConfig())
}
