package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fumiya-kume/ccrefactor/pkg/config"
)

func newConfigCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ccrefactor configuration",
		Long: `Manage ccrefactor configuration settings.

Configuration files are searched in the following order:
  1. $CCREFACTOR_CONFIG (if set)
  2. ./.ccrefactor.yaml
  3. ~/.ccrefactor.yaml
  4. ~/.config/ccrefactor/config.yaml

Use subcommands to view, create, or validate configuration.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(global),
		newConfigValidateCmd(global),
		newConfigInitCmd(),
		newConfigPathCmd(global),
	)
	return cmd
}

func newConfigShowCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current configuration settings, including defaults and overrides.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal configuration: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigValidateCmd(global *globalOptions) *cobra.Command {
	var strict, complete bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long:  "Validate the configuration file for syntax and semantic errors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader(global.cfgFile).LoadConfig()
			if err != nil {
				return err
			}

			level := config.ValidationLevelBasic
			switch {
			case complete:
				level = config.ValidationLevelComplete
			case strict:
				level = config.ValidationLevelStrict
			}

			out := cmd.OutOrStdout()
			result := config.NewConfigValidator(level).ValidateConfig(cfg)
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			if result.HasErrors() {
				for _, err := range result.Errors {
					fmt.Fprintf(out, "error: %v\n", err)
				}
				return fmt.Errorf("configuration validation failed: %w", result.Errors[0])
			}

			fmt.Fprintln(out, "Configuration is valid ✓")
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "also warn about settings that weaken safety checks")
	cmd.Flags().BoolVar(&complete, "complete", false, "run every check, including per-extension guard coverage")
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new configuration file with default settings.

If no path is provided, creates config in ~/.config/ccrefactor/config.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var configPath string
			if len(args) > 0 {
				configPath = args[0]
			} else {
				path, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				configPath = path
			}

			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", configPath)
			}

			if err := config.CreateDefaultConfig(configPath); err != nil {
				return fmt.Errorf("failed to create configuration file: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", configPath)
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing configuration file")
	return cmd
}

func newConfigPathCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  "Display the path to the configuration file that would be used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if global.cfgFile != "" {
				fmt.Fprintln(out, global.cfgFile)
				return nil
			}

			for _, path := range config.GetConfigPaths() {
				if _, err := os.Stat(path); err == nil {
					fmt.Fprintln(out, path)
					return nil
				}
			}

			defaultPath, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (would be created)\n", defaultPath)
			return nil
		},
	}
}
