package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/refactor"
)

// Test constants
const (
	testVersion = "1.0"
)

func createTempFile(t *testing.T, dir, filename, content string) string {
	filePath := filepath.Join(dir, filename)

	// #nosec G301 - 0755 is acceptable for test directories in temporary location
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		t.Fatalf("Failed to create directory for temp file: %v", err)
	}

	if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	return filePath
}

func TestLoader(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	loader := NewLoader(configPath)

	// Test loading non-existent config (should return defaults)
	config, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error loading non-existent config, got: %v", err)
	}

	if config == nil {
		t.Fatal("Expected default config, got nil")
	}

	if config.Version != testVersion {
		t.Errorf("Expected default version 1.0, got %s", config.Version)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	loader := NewLoader(configPath)

	originalConfig := DefaultConfig()
	originalConfig.Refactor.Rules = []string{refactor.RuleFormatCode}
	originalConfig.Refactor.Workers = 4
	originalConfig.Refactor.Patterns.Naming = []string{refactor.HintCamelCase}
	originalConfig.UI.Theme = "light"

	if err := loader.SaveConfig(originalConfig); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedConfig, err := NewLoader(configPath).LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(loadedConfig.Refactor.Rules) != 1 || loadedConfig.Refactor.Rules[0] != refactor.RuleFormatCode {
		t.Errorf("Expected rules %v, got %v", originalConfig.Refactor.Rules, loadedConfig.Refactor.Rules)
	}

	if loadedConfig.Refactor.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", loadedConfig.Refactor.Workers)
	}

	if len(loadedConfig.Refactor.Patterns.Naming) != 1 {
		t.Errorf("Expected naming patterns to round-trip, got %v", loadedConfig.Refactor.Patterns.Naming)
	}

	if loadedConfig.UI.Theme != originalConfig.UI.Theme {
		t.Errorf("Expected theme %s, got %s", originalConfig.UI.Theme, loadedConfig.UI.Theme)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected config to be private, got %v", info.Mode().Perm())
	}
}

func TestPartialConfigKeepsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := createTempFile(t, tempDir, "config.yaml", "version: \"1.0\"\ncompare:\n  depth: basic\n")

	config, err := NewLoader(configPath).LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Compare.Depth != "basic" {
		t.Errorf("Expected basic depth, got %s", config.Compare.Depth)
	}
	if config.GitHub.Host != "github.com" {
		t.Errorf("Expected default host to survive, got %s", config.GitHub.Host)
	}
}

func TestInvalidYAMLConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := createTempFile(t, tempDir, "config.yaml", "invalid: yaml: content:\n  - missing:")

	_, err := NewLoader(configPath).LoadConfig()
	if err == nil {
		t.Fatal("Expected error for invalid YAML config")
	}
	if !errors.IsType(err, errors.ErrorTypeConfiguration) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}

func TestInvalidConfigValidation(t *testing.T) {
	tempDir := t.TempDir()

	invalidConfig := map[string]interface{}{
		"version": testVersion,
		"refactor": map[string]interface{}{
			"rules": []string{"no-such-rule"},
		},
	}

	data, err := yaml.Marshal(invalidConfig)
	if err != nil {
		t.Fatalf("Failed to marshal invalid config: %v", err)
	}

	configPath := createTempFile(t, tempDir, "config.yaml", string(data))

	_, err = NewLoader(configPath).LoadConfig()
	if err == nil {
		t.Fatal("Expected validation error for invalid config")
	}
	if len(errors.GetSuggestions(err)) == 0 {
		t.Error("Expected suggestions on a validation failure")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := CreateDefaultConfig(configPath); err != nil {
		t.Fatalf("Failed to create default config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Default config file was not created")
	}

	config, err := NewLoader(configPath).LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load created default config: %v", err)
	}

	if config.Version != testVersion {
		t.Errorf("Expected version 1.0, got %s", config.Version)
	}
}

func TestFindConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	createTempFile(t, tempDir, ".ccrefactor.yaml", "version: 1.0\nui:\n  theme: auto\n")

	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()
	_ = os.Chdir(tempDir)

	loader := NewLoader("")
	config, err := loader.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to find and load config: %v", err)
	}

	if config.UI.Theme != "auto" {
		t.Errorf("Expected auto theme, got %s", config.UI.Theme)
	}
	if loader.GetConfigPath() != ".ccrefactor.yaml" {
		t.Errorf("Expected the found path to be remembered, got %s", loader.GetConfigPath())
	}
}

func TestLoaderGetConfigPath(t *testing.T) {
	configPath := "/test/path/config.yaml"
	loader := NewLoader(configPath)

	if loader.GetConfigPath() != configPath {
		t.Errorf("Expected config path %s, got %s", configPath, loader.GetConfigPath())
	}
}

func TestEnvironmentConfigPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := createTempFile(t, tempDir, "custom-config.yaml", `
version: "1.0"
refactor:
  workers: 8
`)

	t.Setenv("CCREFACTOR_CONFIG", configPath)

	paths := GetConfigPaths()
	if len(paths) == 0 || paths[0] != configPath {
		t.Errorf("Expected first path to be %s, got %v", configPath, paths)
	}

	config, err := NewLoader("").LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config from environment path: %v", err)
	}

	if config.Refactor.Workers != 8 {
		t.Errorf("Expected 8 workers from env config, got %d", config.Refactor.Workers)
	}
}
