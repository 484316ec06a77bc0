package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"audiocourse/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether everything a build needs is in place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cmd.Context(), cfg)
			lines := renderSectionHeader("Readiness", colorize)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Paths", colorize)...)
			lines = append(lines,
				renderStatusLine("Log directory", statusInfo, cfg.Paths.LogDir, colorize),
				renderStatusLine("Build history", statusInfo, cfg.HistoryPath(), colorize),
			)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if preflight.AllPassed(results) {
				fmt.Fprintln(out, "\nReady to build.")
			} else {
				fmt.Fprintln(out, "\nNot ready: fix the errors above, or run `audiocourse configure`.")
			}
			return nil
		},
	}
}
