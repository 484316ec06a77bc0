package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"audiocourse/internal/build"
	"audiocourse/internal/config"
	"audiocourse/internal/deps"
	"audiocourse/internal/history"
	"audiocourse/internal/logging"
	"audiocourse/internal/preflight"
	"audiocourse/internal/sentence"
	"audiocourse/internal/settings"
	"audiocourse/internal/setup"
	"audiocourse/internal/wizard"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var (
		assumeYes   bool
		dryRun      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a course unit for every qualified sentence",
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

			values, err := settings.Load(cfg.Paths.SettingsFile)
			if err != nil {
				return err
			}
			if err := values.Validate(); err != nil {
				return err
			}

			lines, err := sentence.ReadCandidates(cfg.Paths.SentencesFile)
			if err != nil {
				return err
			}
			sentences, err := sentence.Qualify(lines)
			if err != nil {
				if errors.Is(err, sentence.ErrNoQualifiedItems) {
					return fmt.Errorf("%w: add sentences to %s", err, cfg.Paths.SentencesFile)
				}
				return err
			}
			fmt.Fprintf(out, "Found %d valid sentences (%d lines) in %s\n", len(sentences), len(lines), cfg.Paths.SentencesFile)

			if !assumeYes && !dryRun {
				console := wizard.NewConsole(cmd.InOrStdin(), out)
				engine := wizard.New(nil, console, wizard.WithLogger(logger))
				if _, err := engine.RunStep(cmd.Context(), setup.BuildOverview(cfg.Paths.CourseDir, len(sentences)), values); err != nil {
					if errors.Is(err, wizard.ErrExit) {
						fmt.Fprintln(out, "Build cancelled.")
						return nil
					}
					return err
				}
			}

			if concurrency > 0 {
				cfg.Build.Concurrency = concurrency
			}

			var unitComposer build.Composer
			if !dryRun {
				if err := deps.RequireAvailable(preflight.CheckSystemDeps(cfg)); err != nil {
					return err
				}
				if check := preflight.CheckCredentials(cfg.Paths.CredentialsFile); !check.Passed {
					return fmt.Errorf("google credentials: %s", check.Detail)
				}
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
				unitComposer, err = composerFactory(cmd.Context(), cfg, values, logger)
				if err != nil {
					return err
				}
			}

			pipeline := build.New(build.Options{
				CourseDir:   cfg.Paths.CourseDir,
				LockDir:     cfg.LockDir(),
				Concurrency: cfg.Build.Concurrency,
				DryRun:      dryRun,
			}, values, unitComposer, logger)

			report, err := pipeline.Run(cmd.Context(), sentences)
			if err != nil {
				return err
			}

			renderBuildReport(out, report)
			if !dryRun {
				recordHistory(cmd, cfg, report, values, logger)
			}

			counts := report.Counts()
			if counts.Failed > 0 {
				return fmt.Errorf("%d of %d course units failed; rerun `audiocourse build` to retry them", counts.Failed, counts.Total())
			}
			if dryRun {
				fmt.Fprintf(out, "Dry run: %d units would be built.\n", counts.Planned)
				return nil
			}
			fmt.Fprintf(out, "The course has been built in %s\n", cfg.Paths.CourseDir)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the build overview and start immediately")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report which units would be built without building them")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Units built at once (overrides build.concurrency)")
	return cmd
}

func recordHistory(cmd *cobra.Command, cfg *config.Config, report build.Report, values settings.Configuration, logger *slog.Logger) {
	store, err := history.Open(cmd.Context(), cfg.HistoryPath())
	if err != nil {
		logging.Warn(logger, "build history unavailable", "history_open_failed",
			"check paths.state_dir is writable; the course itself was built", logging.Error(err))
		return
	}
	defer store.Close()
	if err := store.Record(cmd.Context(), report, values.LanguageCode()); err != nil {
		logging.Warn(logger, "build history not recorded", "history_record_failed",
			"run `audiocourse history` to confirm; the course itself was built",
			logging.String(logging.FieldRunID, report.RunID),
			logging.Error(err),
		)
	}
}

func renderBuildReport(out io.Writer, report build.Report) {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		if res.Status == build.StatusBuilt {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(res.Sentence.Line),
			res.Sentence.FolderName,
			string(res.Status),
			resultReason(res),
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Line", "Folder", "Status", "Reason"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		))
	}

	counts := report.Counts()
	summary := [][]string{
		{"Built", strconv.Itoa(counts.Built)},
		{"Skipped", strconv.Itoa(counts.Skipped)},
		{"Failed", strconv.Itoa(counts.Failed)},
	}
	if report.DryRun {
		summary = append(summary, []string{"Planned", strconv.Itoa(counts.Planned)})
	}
	summary = append(summary, []string{"Duration", formatDuration(report.Duration())})
	fmt.Fprintln(out, renderTable([]string{"Result", "Units"}, summary, []columnAlignment{alignLeft, alignRight}))
}

func resultReason(res build.ItemResult) string {
	if res.Err == nil {
		return res.Reason
	}
	if res.Reason == "" {
		return res.Err.Error()
	}
	return res.Reason + ": " + res.Err.Error()
}
