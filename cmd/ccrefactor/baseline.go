package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ccrefactor/internal"
	"github.com/fumiya-kume/ccrefactor/internal/types"
	"github.com/fumiya-kume/ccrefactor/pkg/compare"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/validation"
)

// Output formats
const (
	formatText    = "text"
	formatJSON    = "json"
	formatUnified = "unified"
)

// baselineOptions selects what the local file is compared against
type baselineOptions struct {
	gitRef string
	github string
	path   string
}

func (b *baselineOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.gitRef, "git-ref", "", "compare against the file at this revision of its git repository")
	cmd.Flags().StringVar(&b.github, "github", "", "compare against a file on GitHub (owner/repo@ref, or @ref for the origin remote)")
	cmd.Flags().StringVar(&b.path, "path", "", "path of the file inside the GitHub repository (default: the local file's path)")
}

// resolve turns the positional BASELINE or the --git-ref/--github flags into a reference.
// Exactly one of them must be given.
func (b *baselineOptions) resolve(cmd *cobra.Command, p *internal.Processor, local string, args []string) (types.FileRef, error) {
	fromGitHub := cmd.Flags().Changed("github")

	sources := 0
	for _, set := range []bool{len(args) > 0, b.gitRef != "", fromGitHub} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return types.FileRef{}, errors.NewError(errors.ErrorTypeValidation).
			WithMessage("exactly one baseline is required").
			WithSuggestion("Pass a BASELINE file, --git-ref REV or --github owner/repo@ref").
			Build()
	}

	switch {
	case b.gitRef != "":
		return p.GitBaseline(local, b.gitRef)
	case fromGitHub:
		return p.GitHubBaseline(local, b.github, validation.SanitizeInput(b.path))
	default:
		return internal.LocalRef(validation.SanitizeInput(args[0])), nil
	}
}

// parseDepth reads --depth, falling back to the configured depth
func parseDepth(flag string, p *internal.Processor) (compare.Depth, error) {
	if flag == "" {
		return p.Config().Depth(), nil
	}
	depth, err := compare.ParseDepth(flag)
	if err != nil {
		return compare.Basic, errors.NewError(errors.ErrorTypeValidation).
			WithMessage(err.Error()).
			WithContext("depth", flag).
			Build()
	}
	return depth, nil
}

func validateFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return errors.NewError(errors.ErrorTypeValidation).
		WithMessagef("unsupported output format %q", format).
		WithSuggestion(fmt.Sprintf("Use one of: %s", strings.Join(allowed, ", "))).
		Build()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func comparisonTitle(c *internal.Comparison) string {
	return fmt.Sprintf("%s vs %s", c.Local, c.Baseline)
}
