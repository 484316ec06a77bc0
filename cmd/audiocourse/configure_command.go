package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"audiocourse/internal/settings"
	"audiocourse/internal/setup"
	"audiocourse/internal/wizard"
)

func newConfigureCommand(ctx *commandContext) *cobra.Command {
	var maxChecks int

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Run the setup wizard and save course settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			console := wizard.NewConsole(cmd.InOrStdin(), out)
			console.Heading("audiocourse setup")

			engine := wizard.New(setup.Steps(cfg), console,
				wizard.WithLogger(logger),
				wizard.WithMaxFileChecks(maxChecks),
			)
			values, err := engine.Run(cmd.Context(), settings.New())
			if err != nil {
				if errors.Is(err, wizard.ErrExit) {
					fmt.Fprintln(out, "Setup cancelled; nothing was saved.")
					return nil
				}
				return err
			}
			return setup.NewFinalizer(cfg, logger).Finalize(values, out)
		},
	}

	cmd.Flags().IntVar(&maxChecks, "max-checks", 0, "Give up after this many failed prerequisite checks (0 = keep asking)")
	return cmd
}
