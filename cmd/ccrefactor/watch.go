package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ccrefactor/internal"
	"github.com/fumiya-kume/ccrefactor/internal/types"
	"github.com/fumiya-kume/ccrefactor/pkg/compare"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/ui"
	"github.com/fumiya-kume/ccrefactor/pkg/validation"
)

type watchOptions struct {
	baseline    baselineOptions
	depth       string
	interactive bool
}

func newWatchCmd(global *globalOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch LOCAL [BASELINE]",
		Short: "Re-compare a file against a baseline on every save",
		Long: `Watch a local file and compare it against a baseline every time it is saved.
A baseline on disk is watched as well. Stop with Ctrl+C.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			title := fmt.Sprintf("%s vs %s", internal.LocalRef(local), baseline)
			if opts.interactive {
				return watchInteractive(ctx, p, local, baseline, depth, ui.NewViewer(title, &compare.ComparisonResult{}, theme))
			}

			reporter := ui.NewReporter(theme, 0)
			out := cmd.OutOrStdout()
			return p.Watch(ctx, local, baseline, depth, func(c *internal.Comparison, err error) {
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), errors.FormatUserFriendly(err))
					return
				}
				fmt.Fprintln(out, reporter.RenderComparison(title, c.Result))
			})
		},
	}

	opts.baseline.register(cmd)
	cmd.Flags().StringVarP(&opts.depth, "depth", "d", "", "analysis depth: basic, detailed or comprehensive (default from config)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "show the latest report in a full-screen viewer")
	return cmd
}

// watchInteractive feeds every comparison into the viewer until the user quits or ctx is done
func watchInteractive(ctx context.Context, p *internal.Processor, local string, baseline types.FileRef, depth compare.Depth, viewer *ui.Viewer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := ui.NewProgram(viewer, tea.WithContext(ctx))
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- p.Watch(ctx, local, baseline, depth, func(c *internal.Comparison, err error) {
			if err != nil {
				program.Send(ui.StatusUpdateMsg{Message: errors.FormatUserFriendly(err), Type: ui.StatusError})
				return
			}
			program.Send(ui.ResultUpdatedMsg{Result: c.Result})
			program.Send(ui.StatusUpdateMsg{Message: "updated", Type: ui.StatusSuccess})
		})
		program.Quit()
	}()

	_, err := program.Run()
	interrupted := ctx.Err() != nil
	cancel()
	if werr := <-watchErr; werr != nil {
		return werr
	}
	if err != nil && !interrupted {
		return err
	}
	return nil
}
