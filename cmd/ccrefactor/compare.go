package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ccrefactor/pkg/ui"
	"github.com/fumiya-kume/ccrefactor/pkg/validation"
)

type compareOptions struct {
	baseline    baselineOptions
	depth       string
	format      string
	interactive bool
}

func newCompareCmd(global *globalOptions) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare LOCAL [BASELINE]",
		Short: "Compare a file against a baseline version",
		Long: `Compare a local file against a baseline and report what changed.

The baseline is another file, the same file at a git revision (--git-ref), or a
file on GitHub (--github). Changed lines are classified by significance, and at
detailed depth renamed methods and logic changes are inferred.`,
		Example: `  ccrefactor compare src/user.js src/user.orig.js
  ccrefactor compare src/user.js --git-ref HEAD~1 --format unified
  ccrefactor compare src/user.js --github octocat/project@v1.0.0 --depth comprehensive`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format, formatText, formatJSON, formatUnified); err != nil {
				return err
			}

			p, theme, err := global.setup()
			if err != nil {
				return err
			}

			local := validation.SanitizeInput(args[0])
			baseline, err := opts.baseline.resolve(cmd, p, local, args[1:])
			if err != nil {
				return err
			}
			depth, err := parseDepth(opts.depth, p)
			if err != nil {
				return err
			}

			c, err := p.Compare(cmd.Context(), local, baseline, depth)
			if err != nil {
				return err
			}

			if opts.interactive {
				return ui.RunViewer(ui.NewViewer(comparisonTitle(c), c.Result, theme))
			}

			out := cmd.OutOrStdout()
			switch opts.format {
			case formatJSON:
				return writeJSON(out, c)
			case formatUnified:
				patch, err := p.Unified(c)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, patch)
				return err
			default:
				_, err = fmt.Fprint(out, ui.NewReporter(theme, 0).RenderComparison(comparisonTitle(c), c.Result))
				return err
			}
		},
	}

	opts.baseline.register(cmd)
	cmd.Flags().StringVarP(&opts.depth, "depth", "d", "", "analysis depth: basic, detailed or comprehensive (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json or unified")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the report in a full-screen viewer")
	return cmd
}
