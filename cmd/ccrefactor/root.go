package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fumiya-kume/ccrefactor/internal"
	"github.com/fumiya-kume/ccrefactor/pkg/config"
	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
	"github.com/fumiya-kume/ccrefactor/pkg/ui"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	cfgFile  string
	verbose  bool
	debug    bool
	logLevel string
	logFile  string
	noColor  bool
	theme    string
}

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "ccrefactor",
		Short: "Compare source files against a baseline and apply rule-based refactorings",
		Long: `ccrefactor compares a source file against a baseline version and explains the difference.

It can:
- Classify changed lines by significance and infer renamed methods and logic changes
- Compare against another file, a git revision or a file on GitHub
- Apply refactoring rules guarded against changes in program logic
- Snapshot files and directories before rewriting them
- Watch a file and re-compare on every save`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/ccrefactor/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&opts.debug, "debug", false, "debug output")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file path")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&opts.theme, "theme", "", "UI theme (dark, light, auto)")

	cmd.AddCommand(
		newCompareCmd(opts),
		newAnalyzeCmd(opts),
		newRefactorCmd(opts),
		newBackupCmd(opts),
		newWatchCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.FormatUserFriendly(err))
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies command line overrides
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader(o.cfgFile).LoadConfig()
	if err != nil {
		return nil, err
	}

	if o.verbose {
		cfg.Logging.Level = "info"
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
	if o.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(o.logLevel)
	}
	if o.logFile != "" {
		cfg.Logging.File = o.logFile
	}
	if o.theme != "" {
		cfg.UI.Theme = o.theme
	}
	if o.noColor {
		cfg.UI.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewError(errors.ErrorTypeConfiguration).
			WithMessage("invalid configuration").
			WithCause(err).
			WithSuggestion("Run 'ccrefactor config validate' to verify settings").
			Build()
	}
	return cfg, nil
}

// setup loads the configuration, installs the logger and builds a processor
func (o *globalOptions) setup() (*internal.Processor, ui.Theme, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, ui.Theme{}, err
	}

	log, err := logger.New(cfg.ToLoggerConfig())
	if err != nil {
		return nil, ui.Theme{}, errors.NewError(errors.ErrorTypeConfiguration).
			WithMessage("failed to initialize logger").
			WithCause(err).
			Build()
	}
	logger.SetGlobalLogger(log)

	var processorOpts []internal.ProcessorOption
	if cfg.UI.Sound.Enabled {
		processorOpts = append(processorOpts, internal.WithNotifier(ui.NewSoundNotifier(ui.DefaultSoundConfig())))
	}

	return internal.NewProcessor(cfg, log, processorOpts...), ui.ThemeByName(cfg.UI.Theme, cfg.UI.NoColor), nil
}
