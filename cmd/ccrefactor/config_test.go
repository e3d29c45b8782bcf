package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumiya-kume/ccrefactor/pkg/config"
)

// executeWithConfig runs the command line against an explicit config file
func executeWithConfig(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", configPath))
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := executeWithConfig(t, path, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created at: "+path)

	cfg, err := config.NewLoader(path).LoadConfig()
	require.NoError(t, err)
	defaults := config.DefaultConfig()
	assert.Equal(t, defaults.Compare, cfg.Compare)
	assert.Equal(t, defaults.Refactor.Rules, cfg.Refactor.Rules)
	assert.Equal(t, defaults.GitHub, cfg.GitHub)
	assert.Equal(t, defaults.Watch, cfg.Watch)

	_, err = executeWithConfig(t, path, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeWithConfig(t, path, "config", "init", path, "--force")
	require.NoError(t, err)
}

func TestConfigInit_DefaultPath(t *testing.T) {
	isolate(t)

	out, err := executeWithConfig(t, "", "config", "init")
	require.NoError(t, err)

	want, err := config.DefaultConfigPath()
	require.NoError(t, err)
	assert.Contains(t, out, want)
	assert.FileExists(t, want)
}

func TestConfigShow(t *testing.T) {
	path := isolate(t)
	writeFile(t, path, "version: \"1.0\"\ncompare:\n  depth: basic\n")

	out, err := executeWithConfig(t, path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "depth: basic")
	assert.Contains(t, out, "preserve_logic: true")
	assert.Contains(t, out, "host: github.com")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		args     []string
		wantErr  bool
		contains []string
	}{
		{
			name:     "defaults",
			contains: []string{"Configuration is valid"},
		},
		{
			name:     "strict warnings",
			content:  "version: \"1.0\"\nrefactor:\n  create_backup: false\n",
			args:     []string{"--strict"},
			contains: []string{"warning: refactor.create_backup is off", "Configuration is valid"},
		},
		{
			name:    "invalid depth",
			content: "version: \"1.0\"\ncompare:\n  depth: deep\n",
			wantErr: true,
		},
		{
			name:    "broken yaml",
			content: "version: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := isolate(t)
			if tt.content != "" {
				writeFile(t, path, tt.content)
			}

			out, err := executeWithConfig(t, path, append([]string{"config", "validate"}, tt.args...)...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	path := isolate(t)

	out, err := executeWithConfig(t, path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = executeWithConfig(t, "", "config", "path")
	require.NoError(t, err)
	want, err := config.DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, want+" (would be created)\n", out)
}
