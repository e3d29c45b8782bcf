package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRefString(t *testing.T) {
	tests := []struct {
		name     string
		ref      FileRef
		expected string
	}{
		{
			name:     "local path",
			ref:      FileRef{Path: "src/app.js", Source: SourceLocal},
			expected: "src/app.js",
		},
		{
			name:     "git revision",
			ref:      FileRef{Ref: "HEAD~1", Path: "src/app.js", Source: SourceGit},
			expected: "HEAD~1:src/app.js",
		},
		{
			name:     "github with ref",
			ref:      FileRef{Owner: "octocat", Repo: "hello-world", Ref: "main", Path: "index.js", Source: SourceGitHub},
			expected: "octocat/hello-world@main:index.js",
		},
		{
			name:     "github default branch",
			ref:      FileRef{Owner: "octocat", Repo: "hello-world", Path: "index.js", Source: SourceGitHub},
			expected: "octocat/hello-world:index.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ref.String())
		})
	}
}

func TestFileRefIsRemote(t *testing.T) {
	assert.True(t, FileRef{Source: SourceGitHub}.IsRemote())
	assert.False(t, FileRef{Source: SourceGit}.IsRemote())
	assert.False(t, FileRef{Source: SourceLocal}.IsRemote())
}

func TestFileRefJSON(t *testing.T) {
	ref := FileRef{Ref: "v1.0.0", Path: "lib/util.ts", Source: SourceGit}

	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ref":"v1.0.0","path":"lib/util.ts","source":"git"}`, string(data))
}
