package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// version is set by build flags
	version = "dev"
	// buildDate is set by build flags
	buildDate = "unknown"
	// gitCommit is set by build flags
	gitCommit = "unknown"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version, build date, and system information for ccrefactor.",
		RunE: func(cmd *cobra.Command, args []string) error {
			showDetailed, err := cmd.Flags().GetBool("detailed")
			if err != nil {
				showDetailed = false
			}
			showShort, err := cmd.Flags().GetBool("short")
			if err != nil {
				showShort = false
			}

			out := cmd.OutOrStdout()
			switch {
			case showShort:
				fmt.Fprintf(out, "%s\n", version)
			case showDetailed:
				fmt.Fprintf(out, "ccrefactor version %s\n", version)
				fmt.Fprintf(out, "Build date: %s\n", buildDate)
				fmt.Fprintf(out, "Git commit: %s\n", gitCommit)
				fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
				fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			default:
				fmt.Fprintf(out, "ccrefactor version %s\n", version)
			}
			return nil
		},
	}

	cmd.Flags().BoolP("detailed", "d", false, "show detailed version information")
	cmd.Flags().BoolP("short", "s", false, "show only version number")
	return cmd
}
