package git

import (
	"fmt"
	"regexp"

	"github.com/go-git/go-git/v5"

	"github.com/fumiya-kume/ccrefactor/pkg/errors"
)

// GitHubRemote returns the owner and repository the "origin" remote points at,
// falling back to the first remote that names a repository on host
func (f *Fetcher) GitHubRemote(host string) (string, string, error) {
	remotes, err := f.repo.Remotes()
	if err != nil {
		return "", "", errors.GitError("list remotes", err)
	}

	var urls []string
	if origin, err := f.repo.Remote(git.DefaultRemoteName); err == nil {
		urls = append(urls, origin.Config().URLs...)
	}
	for _, remote := range remotes {
		urls = append(urls, remote.Config().URLs...)
	}

	for _, url := range urls {
		if owner, repo, err := parseGitHubURL(host, url); err == nil {
			return owner, repo, nil
		}
	}

	return "", "", errors.NewError(errors.ErrorTypeGit).
		WithMessagef("no remote points at %s", host).
		WithContext("host", host).
		WithSuggestion("Pass the repository explicitly as owner/repo@ref").
		Build()
}

// parseGitHubURL extracts owner and repository name from a remote URL on host
func parseGitHubURL(host, url string) (string, string, error) {
	h := regexp.QuoteMeta(host)
	patterns := []*regexp.Regexp{
		// https://github.com/owner/repo.git
		regexp.MustCompile(`^https://` + h + `/([^/]+)/([^/]+?)(?:\.git)?/?$`),
		// git@github.com:owner/repo.git
		regexp.MustCompile(`^git@` + h + `:([^/]+)/([^/]+?)(?:\.git)?/?$`),
		// ssh://git@github.com/owner/repo.git
		regexp.MustCompile(`^ssh://git@` + h + `/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	}

	for _, pattern := range patterns {
		matches := pattern.FindStringSubmatch(url)
		if len(matches) == 3 {
			return matches[1], matches[2], nil
		}
	}

	return "", "", fmt.Errorf("not a %s URL: %s", host, url)
}
