package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"audiocourse/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(cfg.HistoryPath()); os.IsNotExist(err) {
				fmt.Fprintln(out, "No builds recorded yet.")
				return nil
			}
			store, err := history.Open(cmd.Context(), cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			if id := strings.TrimSpace(runID); id != "" {
				failures, err := store.Failures(cmd.Context(), id)
				if err != nil {
					return err
				}
				if len(failures) == 0 {
					fmt.Fprintf(out, "Run %s has no failed units.\n", id)
					return nil
				}
				rows := make([][]string, 0, len(failures))
				for _, f := range failures {
					rows = append(rows, []string{strconv.Itoa(f.Line), f.Folder, f.Reason, f.ErrorMessage})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Line", "Folder", "Reason", "Error"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			}

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No builds recorded yet.")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.RunID,
					run.Started.Local().Format(time.DateTime),
					formatDuration(run.Duration()),
					run.LanguageCode,
					strconv.Itoa(run.Built),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Duration", "Language", "Built", "Skipped", "Failed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show the failed units of one run")
	return cmd
}
