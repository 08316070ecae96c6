package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes"
	"github.com/aretw0/quicknotes/internal/config"
	"github.com/aretw0/quicknotes/pkg/core"
)

// cliOptions carries flag values and the loaded configuration to subcommands.
type cliOptions struct {
	verbose    bool
	configPath string
	logFile    string

	cfg    config.Config
	level  slog.Level
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "quicknotes",
		Short: "A small in-memory note taking app",
		Long: `QuickNotes keeps short text notes in memory for the life of the process.
Run without arguments to open the interactive list, create and edit screens,
or use 'quicknotes run' to apply a script of operations.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level, err := logLevel(cfg.Log.Level, opts.verbose)
			if err != nil {
				return err
			}
			opts.level = level

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			opts.logger = logger
			slog.SetDefault(logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/quicknotes/config.yaml)")
	rootCmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs of the interactive session to this file")

	rootCmd.AddCommand(newRunCmd(opts), newVersionCmd())
	return rootCmd
}

// logLevel resolves the configured level name; --verbose forces debug.
func logLevel(name string, verbose bool) (slog.Level, error) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	if verbose {
		level = slog.LevelDebug
	}
	return level, nil
}

// newService builds the note service from the loaded configuration.
func newService(opts *cliOptions, logger *slog.Logger) (*core.Service, error) {
	return quicknotes.New(
		quicknotes.WithLogger(logger),
		quicknotes.WithEventBuffer(opts.cfg.Events.Buffer),
		quicknotes.WithFuzzyDistance(opts.cfg.Search.FuzzyDistance),
	)
}

// sessionLogger returns the logger for the interactive UI. The terminal is
// owned by the UI, so logs go to --log-file or nowhere.
func sessionLogger(opts *cliOptions) (*slog.Logger, io.Closer, error) {
	if opts.logFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.level})), f, nil
}
