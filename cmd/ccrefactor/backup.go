package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ccrefactor/pkg/validation"
)

func newBackupCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup PATH",
		Short: "Snapshot a file or directory next to itself",
		Long: `Copy a file or directory to PATH.backup.<timestamp>, where the timestamp is
the current UTC time with ':' and '.' replaced by '-'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := global.setup()
			if err != nil {
				return err
			}

			path, err := p.Backup(validation.SanitizeInput(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Backup created at: %s\n", path)
			return err
		},
	}
}
