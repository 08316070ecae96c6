package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes/internal/tui"
)

func runInteractive(cmd *cobra.Command, opts *cliOptions) error {
	logger, closer, err := sessionLogger(opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	svc, err := newService(opts, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := tui.New(ctx, svc, tui.Options{
		Accent: opts.cfg.UI.Accent,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	logger.Info("interactive session started", "session", svc.Session())
	_, err = tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	).Run()
	return err
}
