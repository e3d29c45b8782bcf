package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumiya-kume/ccrefactor/pkg/errors"
)

func TestRefactorCommand(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		args     []string
		want     string
		contains []string
	}{
		{
			name:     "dry run",
			content:  "let a = 1;\nuse(a);\n",
			args:     []string{"--rule", "format-code", "--dry-run"},
			want:     "let a = 1;\nuse(a);\n",
			contains: []string{"Refactoring (dry run)", "[format-code]", "Would rewrite 1 file(s) with 1 change(s)"},
		},
		{
			name:     "rewrite",
			content:  "let a = 1;\nuse(a);\n",
			args:     []string{"--rule", "format-code", "--backup=false"},
			want:     "const a: number = 1;\nuse(a);\n",
			contains: []string{"Rewrote 1 file(s) with 1 change(s)"},
		},
		{
			name:     "nothing to do",
			content:  "use(a);\n",
			args:     []string{"--backup=false"},
			want:     "use(a);\n",
			contains: []string{"No changes needed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "app.js")
			writeFile(t, path, tt.content)

			out, err := execute(t, append([]string{"refactor", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, path))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRefactorCommand_BackupByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.js")
	writeFile(t, path, "let a = 1;\nuse(a);\n")

	out, err := execute(t, "refactor", path, "-r", "format-code", "--format", "json")
	require.NoError(t, err)

	var result struct {
		ID         string   `json:"id"`
		Files      []string `json:"files"`
		BackupPath string   `json:"backup_path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, []string{path}, result.Files)
	require.NotEmpty(t, result.BackupPath)
	assert.Equal(t, "let a = 1;\nuse(a);\n", readFile(t, result.BackupPath))
}

func TestRefactorCommand_GuardRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.js")
	content := "import { a, b } from 'm';\nconsole.log(a);"
	writeFile(t, path, content)

	_, err := execute(t, "refactor", path, "--rule", "remove-unused-imports")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeGuardRejected))
	assert.Equal(t, content, readFile(t, path))

	matches, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRefactorCommand_WithoutGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.js")
	writeFile(t, path, "import { a, b } from 'm';\nconsole.log(a);")

	_, err := execute(t, "refactor", path, "--rule", "remove-unused-imports", "--preserve-logic=false", "--backup=false")
	require.NoError(t, err)
	assert.Equal(t, "console.log(a);", readFile(t, path))
}

func TestRefactorCommand_DetectPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "import { x } from 'x';\nconst getValue = () => x;\n")

	out, err := execute(t, "refactor", dir, "--detect-patterns", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Refactoring (dry run)")
}

func TestRefactorCommand_Missing(t *testing.T) {
	_, err := execute(t, "refactor", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInputNotFound))
}
