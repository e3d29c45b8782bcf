package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumiya-kume/ccrefactor/internal/types"
	"github.com/fumiya-kume/ccrefactor/pkg/clock"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
)

const baselineSource = "function getUser(id) {\n  return db.find(id);\n}\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	encoded := base64.StdEncoding.EncodeToString([]byte(baselineSource))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = fmt.Fprint(w, `{"message": "Bad credentials"}`)
			return
		}

		switch r.URL.Path {
		case "/repos/owner/repo/contents/src/user.js":
			if ref := r.URL.Query().Get("ref"); ref != "" && ref != "v1.0.0" {
				w.WriteHeader(http.StatusNotFound)
				_, _ = fmt.Fprint(w, `{"message": "No commit found for the ref"}`)
				return
			}
			_, _ = fmt.Fprintf(w, `{"type": "file", "encoding": "base64", "name": "user.js", "path": "src/user.js", "content": %q}`, encoded)
		case "/repos/owner/repo/contents/src":
			_, _ = fmt.Fprint(w, `[{"type": "file", "name": "user.js", "path": "src/user.js"}]`)
		case "/repos/owner/forbidden/contents/src/user.js":
			w.WriteHeader(http.StatusForbidden)
			_, _ = fmt.Fprint(w, `{"message": "Forbidden"}`)
		case "/repos/owner/broken/contents/src/user.js":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = fmt.Fprint(w, `{"message": "Server Error"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"message": "Not Found"}`)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server, token string) *Client {
	t.Helper()

	client, err := NewClient(ClientConfig{
		Token:   token,
		BaseURL: server.URL,
		Clock:   clock.NewFakeClock(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(ClientConfig{Token: "test-token"})

	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", client.apiClient.BaseURL.String())
	assert.Equal(t, 5000, client.rateLimiter.maxTokens)
}

func TestNewClient_Enterprise(t *testing.T) {
	client, err := NewClient(ClientConfig{Host: "github.example.com", Token: "test-token", RequestsPerHour: 60})

	require.NoError(t, err)
	assert.Equal(t, "https://github.example.com/api/v3/", client.apiClient.BaseURL.String())
	assert.Equal(t, 60, client.rateLimiter.maxTokens)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(ClientConfig{Token: "test-token", BaseURL: "://bad"})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfiguration))
}

func TestClient_FetchContent(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server, "test-token")

	tests := []struct {
		name      string
		ref       types.FileRef
		expected  string
		errorType errors.ErrorType
	}{
		{
			name:     "default branch",
			ref:      types.FileRef{Owner: "owner", Repo: "repo", Path: "src/user.js", Source: types.SourceGitHub},
			expected: baselineSource,
		},
		{
			name:     "tag",
			ref:      types.FileRef{Owner: "owner", Repo: "repo", Ref: "v1.0.0", Path: "src/user.js", Source: types.SourceGitHub},
			expected: baselineSource,
		},
		{
			name:      "unknown ref",
			ref:       types.FileRef{Owner: "owner", Repo: "repo", Ref: "v9", Path: "src/user.js", Source: types.SourceGitHub},
			errorType: errors.ErrorTypeInputNotFound,
		},
		{
			name:      "missing file",
			ref:       types.FileRef{Owner: "owner", Repo: "repo", Path: "src/missing.js", Source: types.SourceGitHub},
			errorType: errors.ErrorTypeInputNotFound,
		},
		{
			name:      "directory",
			ref:       types.FileRef{Owner: "owner", Repo: "repo", Path: "src", Source: types.SourceGitHub},
			errorType: errors.ErrorTypeInvalidShape,
		},
		{
			name:      "forbidden",
			ref:       types.FileRef{Owner: "owner", Repo: "forbidden", Path: "src/user.js", Source: types.SourceGitHub},
			errorType: errors.ErrorTypeGitHub,
		},
		{
			name:      "server error",
			ref:       types.FileRef{Owner: "owner", Repo: "broken", Path: "src/user.js", Source: types.SourceGitHub},
			errorType: errors.ErrorTypeGitHub,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := client.FetchContent(context.Background(), tt.ref)

			if tt.errorType != errors.ErrorTypeUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.errorType, errors.TypeOf(err), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, content)
		})
	}
}

func TestClient_FetchContent_Unauthorized(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server, "wrong-token")

	_, err := client.FetchContent(context.Background(), types.FileRef{
		Owner: "owner", Repo: "repo", Path: "src/user.js", Source: types.SourceGitHub,
	})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeAuthentication))
	assert.NotEmpty(t, errors.GetSuggestions(err))
}

func TestClient_FetchContent_RateLimited(t *testing.T) {
	server := newTestServer(t)
	client, err := NewClient(ClientConfig{
		Token:           "test-token",
		BaseURL:         server.URL,
		RequestsPerHour: 1,
		Clock:           clock.NewFakeClock(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
	})
	require.NoError(t, err)

	ref := types.FileRef{Owner: "owner", Repo: "repo", Path: "src/user.js", Source: types.SourceGitHub}
	_, err = client.FetchContent(context.Background(), ref)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.FetchContent(ctx, ref)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, client.RateLimiter().AvailableTokens())
}

func TestClient_ImplementsContentFetcher(t *testing.T) {
	var fetcher ContentFetcher = &Client{}
	assert.NotNil(t, fetcher)
}
