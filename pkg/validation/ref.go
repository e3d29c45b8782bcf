// Package validation parses and validates the repository references accepted by ccrefactor
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fumiya-kume/ccrefactor/internal/types"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
)

var (
	repoRefPattern  = regexp.MustCompile(`^([^/\s@]+)/([^/\s@]+)(?:@(\S+))?$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
	repoNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ParseGitHubRef parses "owner/repo[@ref]" and pairs it with a path inside the repository
func ParseGitHubRef(repoRef, path string) (types.FileRef, error) {
	repoRef = SanitizeInput(repoRef)
	if repoRef == "" {
		return types.FileRef{}, errors.ValidationError("repository reference cannot be empty")
	}

	matches := repoRefPattern.FindStringSubmatch(repoRef)
	if matches == nil {
		return types.FileRef{}, errors.NewError(errors.ErrorTypeValidation).
			WithMessage("invalid repository reference format").
			WithContext("reference", repoRef).
			WithSuggestion("Use format: owner/repo@ref").
			Build()
	}

	ref := types.FileRef{
		Owner:  matches[1],
		Repo:   matches[2],
		Ref:    matches[3],
		Path:   path,
		Source: types.SourceGitHub,
	}
	if err := ValidateFileRef(ref); err != nil {
		return types.FileRef{}, err
	}
	return ref, nil
}

// ParseGitRef pairs a local git revision with a path inside the repository
func ParseGitRef(revision, path string) (types.FileRef, error) {
	ref := types.FileRef{
		Ref:    SanitizeInput(revision),
		Path:   path,
		Source: types.SourceGit,
	}
	if err := ValidateFileRef(ref); err != nil {
		return types.FileRef{}, err
	}
	return ref, nil
}

// ValidateFileRef checks a reference for completeness before it is fetched
func ValidateFileRef(ref types.FileRef) error {
	if strings.TrimSpace(ref.Path) == "" {
		return errors.ValidationError("file path cannot be empty")
	}

	switch ref.Source {
	case types.SourceLocal:
		return nil
	case types.SourceGit:
		return validateRevision(ref.Ref)
	case types.SourceGitHub:
		if err := validateGitHubUsername(ref.Owner); err != nil {
			return errors.NewError(errors.ErrorTypeValidation).
				WithMessage("invalid repository owner").
				WithCause(err).
				WithContext("owner", ref.Owner).
				WithSuggestion("Use a valid GitHub username").
				Build()
		}
		if err := validateGitHubRepository(ref.Repo); err != nil {
			return errors.NewError(errors.ErrorTypeValidation).
				WithMessage("invalid repository name").
				WithCause(err).
				WithContext("repo", ref.Repo).
				WithSuggestion("Use a valid GitHub repository name").
				Build()
		}
		if ref.Ref != "" {
			return validateRevision(ref.Ref)
		}
		return nil
	default:
		return errors.ValidationError(fmt.Sprintf("invalid source type: %s", ref.Source))
	}
}

// validateRevision rejects revisions git itself would refuse
func validateRevision(rev string) error {
	if rev == "" {
		return errors.ValidationError("revision cannot be empty")
	}
	if strings.ContainsAny(rev, " \t\n\\") || strings.Contains(rev, "..") || strings.HasPrefix(rev, "-") {
		return errors.NewError(errors.ErrorTypeValidation).
			WithMessagef("invalid revision %q", rev).
			WithContext("revision", rev).
			WithSuggestion("Use a branch, tag or commit hash").
			Build()
	}
	return nil
}

// validateGitHubUsername validates a GitHub username
func validateGitHubUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > 39 {
		return fmt.Errorf("username too long (max 39 characters)")
	}

	// alphanumerics and single hyphens, no hyphen at either end
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("invalid username format")
	}

	if strings.Contains(username, "--") {
		return fmt.Errorf("username cannot contain consecutive hyphens")
	}

	return nil
}

// validateGitHubRepository validates a GitHub repository name
func validateGitHubRepository(repoName string) error {
	if repoName == "" {
		return fmt.Errorf("repository name cannot be empty")
	}

	if len(repoName) > 100 {
		return fmt.Errorf("repository name too long (max 100 characters)")
	}

	if strings.HasPrefix(repoName, ".") {
		return fmt.Errorf("repository name cannot start with a period")
	}

	if strings.HasSuffix(repoName, ".git") {
		return fmt.Errorf("repository name cannot end with .git")
	}

	if !repoNamePattern.MatchString(repoName) {
		return fmt.Errorf("invalid repository name format")
	}

	return nil
}

// SanitizeInput trims whitespace and strips control characters from CLI input
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, input)
}
