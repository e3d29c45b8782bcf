// Package github fetches baseline file content from GitHub with rate limiting and gh authentication.
package github

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/google/go-github/v60/github"

	"github.com/fumiya-kume/ccrefactor/internal/types"
	"github.com/fumiya-kume/ccrefactor/pkg/clock"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
)

const defaultHost = "github.com"

// ClientConfig configures a Client
type ClientConfig struct {
	Host            string
	RequestsPerHour int
	Timeout         time.Duration
	// Token overrides the token gh has stored for Host
	Token string
	// BaseURL points the client at another API root, such as a test server
	BaseURL string
	Clock   clock.Clock
	Logger  logger.LoggerInterface
}

// Client reads repository contents through the GitHub REST API
type Client struct {
	apiClient   *github.Client
	rateLimiter *RateLimiter
	logger      logger.LoggerInterface
}

// NewClient creates a new GitHub client authenticated with the token gh knows for the host
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.RequestsPerHour <= 0 {
		// authenticated REST quota
		cfg.RequestsPerHour = 5000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewRealClock()
	}

	token := cfg.Token
	if token == "" {
		token, _ = auth.TokenForHost(cfg.Host)
	}

	apiClient := github.NewClient(&http.Client{Timeout: cfg.Timeout})
	if token != "" {
		apiClient = apiClient.WithAuthToken(token)
	}

	switch {
	case cfg.BaseURL != "":
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, errors.ConfigurationError(fmt.Sprintf("invalid GitHub API URL %q: %v", cfg.BaseURL, err))
		}
		apiClient.BaseURL = baseURL
	case cfg.Host != defaultHost:
		enterpriseURL := "https://" + cfg.Host + "/"
		var err error
		apiClient, err = apiClient.WithEnterpriseURLs(enterpriseURL, enterpriseURL)
		if err != nil {
			return nil, errors.ConfigurationError(fmt.Sprintf("invalid GitHub host %q: %v", cfg.Host, err))
		}
	}

	return &Client{
		apiClient:   apiClient,
		rateLimiter: NewRateLimiterWithClock(cfg.RequestsPerHour, time.Hour, cfg.Clock),
		logger:      logger.OrNop(cfg.Logger),
	}, nil
}

// FetchContent returns the text of a file at the reference's ref, or the default branch when no ref is set
func (c *Client) FetchContent(ctx context.Context, ref types.FileRef) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	c.logger.Debug("fetching %s", ref)

	var opts *github.RepositoryContentGetOptions
	if ref.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref.Ref}
	}

	file, dir, _, err := c.apiClient.Repositories.GetContents(ctx, ref.Owner, ref.Repo, ref.Path, opts)
	if err != nil {
		err = c.translateError(ref, err)
		c.logger.Error("fetch %s failed: %v", ref, err)
		return "", err
	}

	if file == nil {
		c.logger.Debug("%s is a directory with %d entries", ref, len(dir))
		return "", errors.InvalidShapeError(ref.String(), "file")
	}

	if file.GetType() != "file" {
		return "", errors.InvalidShapeError(ref.String(), "file")
	}

	content, err := file.GetContent()
	if err != nil {
		return "", errors.GitHubError("decode content", err)
	}

	return content, nil
}

// translateError maps API status codes onto ccrefactor's error types
func (c *Client) translateError(ref types.FileRef, err error) error {
	var ghErr *github.ErrorResponse
	if stderrors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return errors.InputNotFoundError(ref.String())
		case http.StatusUnauthorized:
			return errors.AuthenticationError("GitHub")
		case http.StatusForbidden:
			return errors.NewError(errors.ErrorTypeGitHub).
				WithMessagef("access forbidden to %s/%s", ref.Owner, ref.Repo).
				WithCause(err).
				WithContext("repository", ref.Owner+"/"+ref.Repo).
				WithSuggestion("Run 'gh auth login' or check the API rate limit").
				Build()
		}
	}
	return errors.GitHubError("fetch content", err)
}

// RateLimiter exposes the client's request pacing
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}
