package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes/internal/script"
)

func newRunCmd(opts *cliOptions) *cobra.Command {
	var (
		format    string
		showState bool
	)

	runCmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Run a script of note operations",
		Long: `Run applies a YAML script of add, update, delete, get, search and list steps
to a fresh in-memory store and prints the notes left at the end.
Results of get, search and list steps are printed first, in script order.
Reads from stdin when no file (or "-") is given.

Step errors (empty fields, unknown ids) are reported on stderr and do not
stop the script unless it sets continue_on_error: false.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			if format == "" {
				format = opts.cfg.Output.Format
			}
			if !validFormat(format) {
				return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
			}

			s, err := script.Parse(in)
			if err != nil {
				return err
			}

			svc, err := newService(opts, opts.logger)
			if err != nil {
				return err
			}

			results, err := script.NewRunner(svc, opts.logger).Run(cmd.Context(), s)
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "step %d (%s): %v\n", res.Step, res.Op, res.Err)
					continue
				}
				if !isQuery(res.Op) {
					continue
				}
				if err := renderStep(cmd.OutOrStdout(), format, res); err != nil {
					return err
				}
			}
			if err != nil {
				return err
			}

			notes, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), format, notes); err != nil {
				return err
			}

			if showState {
				return render(cmd.OutOrStdout(), format, svc.State())
			}
			return nil
		},
	}

	runCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml (default from config)")
	runCmd.Flags().BoolVar(&showState, "state", false, "Print the service state after the notes")
	return runCmd
}
