package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ccrefactor/pkg/compare"
	"github.com/fumiya-kume/ccrefactor/pkg/ui"
	"github.com/fumiya-kume/ccrefactor/pkg/validation"
)

type analyzeOptions struct {
	baseline baselineOptions
	methods  bool
	logic    bool
	format   string
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze LOCAL [BASELINE]",
		Short: "Report renamed methods and logic changes",
		Long: `Analyze a local file against a baseline and list renamed methods and
changed control flow. Without --methods or --logic both are reported.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format, formatText, formatJSON); err != nil {
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

			analyzeOpts := compare.AnalyzeOptions{MethodTracking: opts.methods, LogicAnalysis: opts.logic}
			if !opts.methods && !opts.logic {
				analyzeOpts = compare.AnalyzeOptions{MethodTracking: true, LogicAnalysis: true}
			}

			analysis, err := p.Analyze(cmd.Context(), local, baseline, analyzeOpts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, analysis)
			}
			_, err = fmt.Fprint(out, ui.NewReporter(theme, 0).RenderAnalysis(analysis))
			return err
		},
	}

	opts.baseline.register(cmd)
	cmd.Flags().BoolVar(&opts.methods, "methods", false, "report renamed methods")
	cmd.Flags().BoolVar(&opts.logic, "logic", false, "report control-flow changes")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text or json")
	return cmd
}
